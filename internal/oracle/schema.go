package oracle

import "github.com/abhisek/educareer/internal/llm"

// TaskSchema is the structured reply of GenerateDailyTask.
var TaskSchema = &llm.Schema{
	Name:        "daily-task",
	Description: "A realistic work task for a trainee",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short task title",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Detailed description of the deliverable and its context",
			},
			"skill": map[string]any{
				"type":        "string",
				"description": "The target skill the task practices",
			},
		},
		"required":             []any{"title", "description", "skill"},
		"additionalProperties": false,
	},
}

// FeedbackSchema is the structured reply of AnalyzeSubmission.
var FeedbackSchema = &llm.Schema{
	Name:        "submission-feedback",
	Description: "Mentor review of a trainee submission",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"description": "Strengths and areas for improvement",
			},
			"score": map[string]any{
				"type":        "number",
				"description": "Final score from 0 to 100",
			},
			"suggestions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"feedback", "score", "suggestions"},
		"additionalProperties": false,
	},
}

// AssessmentSchema wraps the question list in an object; structured
// output modes require an object root.
var AssessmentSchema = &llm.Schema{
	Name:        "placement-test",
	Description: "A 10-question multiple choice placement test",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"description": "Zero-based index into options",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"beginner", "intermediate", "advanced"},
						},
					},
					"required":             []any{"question", "options", "correctAnswerIndex", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// ChatSchema is the structured reply of Chat.
var ChatSchema = &llm.Schema{
	Name:        "mentor-reply",
	Description: "The mentor's answer to a trainee question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{"type": "string"},
		},
		"required":             []any{"reply"},
		"additionalProperties": false,
	},
}
