package genai

// Prompts are in German because the knowledge base is maintained in German.

const summarizeSystem = "Du bist ein Assistent, der prägnante deutsche Zusammenfassungen von Fachdokumenten erstellt."

const summarizePrompt = `Fasse den folgenden Text in 2-3 Sätzen auf Deutsch zusammen. Gib nur die Zusammenfassung aus, ohne Einleitung.

%s`

const translateSystem = "Du bist ein Fachübersetzer. Übersetze Texte präzise ins Deutsche und erhalte dabei Absätze und Aufzählungen."

const translatePrompt = `Übersetze den folgenden Text ins Deutsche. Behalte die Struktur des Textes bei. Gib nur die Übersetzung aus.

%s`

const answerSystem = "Du bist ein hilfreicher Assistent für eine interne Wissensdatenbank. Antworte auf Deutsch und nutze ausschließlich den bereitgestellten Kontext."

const answerPrompt = `Kontext aus der Wissensdatenbank:

%s

Frage: %s

Beantworte die Frage kurz und präzise auf Deutsch, basierend nur auf dem Kontext oben. Wenn der Kontext die Frage nicht beantwortet, sage das ehrlich.`
