package oracle

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
)

const systemPrompt = `You are the AI Mentor of EduCareer, a career-training platform. Slogan: ` + Slogan + `.

Rules:
- Write everything the trainee reads in the requested language.
- Ground tasks and questions in real day-to-day work of the specialization.
- Be concise and professional.`

var prompts = template.Must(template.New("prompts").Parse(`
{{define "task"}}Act as an expert in {{.Track}}. Generate a realistic work task for a level {{.Level}} student on EduCareer platform. Slogan: {{.Slogan}}. Include title, detailed description, and target skill. Language: {{.Language}}.{{end}}

{{define "submission"}}You are an AI Mentor for EduCareer specialized in {{.Track}}. Slogan: {{.Slogan}}. Evaluate this student submission for the task: "{{.TaskTitle}}".
Submission: "{{.Submission}}"
Provide feedback on:
1. Strengths
2. Areas for improvement
3. Final Score (0-100)
Language: {{.Language}}.{{end}}

{{define "assessment"}}Create a {{.Count}}-question placement test for EduCareer platform in {{.Track}}.
- {{.Beginner}} Beginner questions
- {{.Intermediate}} Intermediate questions
- {{.Advanced}} Advanced questions
Format: Multiple choice. Return the questions in the "questions" array; correctAnswerIndex is zero-based. Language: {{.Language}}.{{end}}

{{define "chat"}}You are an AI Mentor for a platform called EduCareer. Slogan: {{.Slogan}}. Your specialty is {{.Track}}.
A student is asking: "{{.Message}}".
Reply clearly and professionally in {{.Language}}. Keep it concise.{{end}}
`))

type promptData struct {
	Track      string
	Slogan     string
	Language   string
	Level      int
	TaskTitle  string
	Submission string
	Message    string

	Count        int
	Beginner     int
	Intermediate int
	Advanced     int
}

func newPromptData(cat *catalog.Catalog, spec catalog.Specialization, lang catalog.Language) promptData {
	return promptData{
		Track:    trackName(cat, spec),
		Slogan:   Slogan,
		Language: lang.Name(),
	}
}

// trackName is the English title of spec, or the identifier made readable
// when the catalog has no entry.
func trackName(cat *catalog.Catalog, spec catalog.Specialization) string {
	if cat != nil {
		if info, err := cat.Lookup(spec); err == nil && info.Title.EN != "" {
			return info.Title.EN
		}
	}
	return strings.ReplaceAll(string(spec), "_", " ")
}

func render(name string, data promptData) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}
	return b.String(), nil
}

func taskPrompt(cat *catalog.Catalog, req TaskRequest) (string, error) {
	d := newPromptData(cat, req.Spec, req.Lang)
	d.Level = req.Level
	return render("task", d)
}

func submissionPrompt(cat *catalog.Catalog, req SubmissionRequest) (string, error) {
	d := newPromptData(cat, req.Spec, req.Lang)
	d.TaskTitle = req.TaskTitle
	d.Submission = req.Submission
	return render("submission", d)
}

func assessmentPrompt(cat *catalog.Catalog, req AssessmentRequest) (string, error) {
	d := newPromptData(cat, req.Spec, req.Lang)
	d.Count = assessment.QuestionCount
	d.Beginner = assessment.BeginnerQuestions
	d.Intermediate = assessment.IntermediateQuestions
	d.Advanced = assessment.AdvancedQuestions
	return render("assessment", d)
}

func chatPrompt(cat *catalog.Catalog, req ChatRequest) (string, error) {
	d := newPromptData(cat, req.Spec, req.Lang)
	d.Message = req.Message
	return render("chat", d)
}
