package tools

import "encoding/json"

// JSON schemas handed to the provider as response_format so it returns a
// structured object instead of prose.

var storyResponseSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "title": {"type": "string", "description": "The title of the simplified story"},
    "summary": {"type": "string", "description": "A 2-3 sentence summary of the story"},
    "mainCharacters": {
      "type": "array",
      "description": "List of main characters in the story",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"}
        },
        "required": ["name", "description"]
      }
    },
    "storyContent": {"type": "string", "description": "The simplified story content"},
    "keyLessons": {
      "type": "array",
      "description": "Key lessons or morals from the story",
      "items": {"type": "string"}
    },
    "originalReferences": {
      "type": "array",
      "description": "Biblical references (book, chapter, verses)",
      "items": {"type": "string"}
    },
    "visualDescriptions": {
      "type": "array",
      "description": "Descriptions of key scenes that could be visualized",
      "items": {
        "type": "object",
        "properties": {
          "scene": {"type": "string"},
          "description": {"type": "string"}
        },
        "required": ["scene", "description"]
      }
    },
    "comprehensionQuestions": {
      "type": "array",
      "description": "questions to test understanding",
      "items": {"type": "string"}
    },
    "prayers": {
      "type": "array",
      "description": "3 versions of prayers based on the key lessons of the story, each around 3 paragraphs, spiritual and personal",
      "items": {"type": "string"}
    }
  },
  "required": ["title", "summary", "mainCharacters", "storyContent", "keyLessons", "originalReferences", "visualDescriptions", "comprehensionQuestions", "prayers"]
}`)

var verseResponseSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "bibleVerses": {
      "type": "array",
      "maxItems": 3,
      "description": "A list of bible verses which each have a reference to the verse, the verse itself and a simplified version of the bible verse",
      "items": {
        "type": "object",
        "properties": {
          "reference": {"type": "string", "description": "Bible verse reference which co-relates to the feeling the user felt."},
          "bibleVerse": {"type": "string", "description": "The Bible verse itself that co-relates and/or expresses the feeling the user felt"},
          "simplifiedVersionOfBibleVerse": {"type": "string", "description": "The Bible verse simplified into easier language"}
        },
        "required": ["reference", "bibleVerse", "simplifiedVersionOfBibleVerse"]
      }
    },
    "feelings": {
      "type": "array",
      "description": "a list of feelings and/or emotions the bible verse expressed",
      "items": {"type": "string"}
    }
  },
  "required": ["bibleVerses", "feelings"]
}`)

// DailyVerseResponseSchema is used by the unmetered daily verse endpoint.
var DailyVerseResponseSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "verse": {"type": "string", "description": "random bible verse"},
    "bibleVerseReference": {"type": "string", "description": "the reference of where the bible verse came from in the bible eg: ephesians 3:20"},
    "keyTakeaways": {
      "type": "array",
      "minItems": 1,
      "maxItems": 3,
      "description": "a list of key takeaways from the bible verse",
      "items": {"type": "string"}
    }
  },
  "required": ["verse", "bibleVerseReference", "keyTakeaways"]
}`)
