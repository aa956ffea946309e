package session

import (
	"math"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
)

// ProgramTasks is the number of daily tasks in a full program.
const ProgramTasks = 30

// Portfolio holds the data displayed on the portfolio page.
type Portfolio struct {
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	TrackTitle        string          `json:"trackTitle,omitempty"`
	Level             int             `json:"level"`
	LevelLabel        string          `json:"levelLabel,omitempty"`
	AssessmentScore   int             `json:"assessmentScore"`
	Tasks             []CompletedTask `json:"tasks"`
	CompletionPercent int             `json:"completionPercent"`
	AverageScore      float64         `json:"averageScore"`
	Best              *CompletedTask  `json:"best,omitempty"`
}

// BuildPortfolio summarizes a user's work history.
func BuildPortfolio(u *User, cat *catalog.Catalog, lang catalog.Language) Portfolio {
	p := Portfolio{
		Name:       u.Name,
		Email:      u.Email,
		Level:      u.Level,
		LevelLabel: assessment.LevelLabel(u.Level, lang),
		Tasks:      append([]CompletedTask{}, u.CompletedTasks...),
	}
	if spec, ok := u.Track(); ok {
		if info, err := cat.Lookup(spec); err == nil {
			p.TrackTitle = info.Title.In(lang)
		}
	}
	if u.AssessmentScore != nil {
		p.AssessmentScore = *u.AssessmentScore
	}

	p.CompletionPercent = completionPercent(len(u.CompletedTasks))
	p.AverageScore = averageScore(u.CompletedTasks)
	for i := range p.Tasks {
		if p.Best == nil || p.Tasks[i].Score > p.Best.Score {
			p.Best = &p.Tasks[i]
		}
	}
	return p
}

func completionPercent(done int) int {
	pct := int(math.Round(float64(done) / ProgramTasks * 100))
	return min(pct, 100)
}

func averageScore(tasks []CompletedTask) float64 {
	if len(tasks) == 0 {
		return 0
	}
	var sum float64
	for _, t := range tasks {
		sum += t.Score
	}
	return sum / float64(len(tasks))
}

// ProjectKind distinguishes solo projects from team simulations.
type ProjectKind string

const (
	ProjectIndividual ProjectKind = "individual"
	ProjectGroup      ProjectKind = "group"
)

// Project is a practical project and whether the user can start it.
type Project struct {
	ID          string       `json:"id"`
	Kind        ProjectKind  `json:"kind"`
	Title       catalog.Text `json:"title"`
	Description catalog.Text `json:"description"`
	Requirement catalog.Text `json:"requirement"`
	Unlocked    bool         `json:"unlocked"`
}

// Requirements of the group project.
const (
	GroupProjectTasks    = 10
	GroupProjectAverage  = 80
	AdvancedProjectLevel = 2
)

// Projects lists the practical projects with their unlock state.
func Projects(u *User) []Project {
	avg := averageScore(u.CompletedTasks)
	return []Project{
		{
			ID:          "strategic-plan",
			Kind:        ProjectIndividual,
			Title:       catalog.Text{AR: "مشروع بناء الخطة الاستراتيجية", EN: "Strategic Plan Project"},
			Description: catalog.Text{AR: "قم ببناء خطة كاملة لمشروعك بناءً على ما تعلمته في محاضرات التأسيس.", EN: "Build a full plan for your project based on foundation lectures."},
			Requirement: catalog.Text{AR: "متاح الآن", EN: "Available"},
			Unlocked:    true,
		},
		{
			ID:          "advanced-finance",
			Kind:        ProjectIndividual,
			Title:       catalog.Text{AR: "مشروع التحليل المالي المتقدم", EN: "Advanced Finance Project"},
			Description: catalog.Text{AR: "حلل القوائم المالية لشركة حقيقية وقدم توصيات استثمارية.", EN: "Analyze a real company's statements and present investment recommendations."},
			Requirement: catalog.Text{AR: "يفتح في المستوى الثاني.", EN: "Unlocks at Level 2."},
			Unlocked:    u.Level >= AdvancedProjectLevel,
		},
		{
			ID:          "startup-challenge",
			Kind:        ProjectGroup,
			Title:       catalog.Text{AR: "تحدي الشركات الناشئة", EN: "Startup Challenge"},
			Description: catalog.Text{AR: "انضم إلى فريق من 5 طلاب من تخصصات مختلفة (محاسبة، تسويق، إدارة) لإنشاء نموذج عمل حقيقي.", EN: "Join a team of 5 students from different tracks (accounting, marketing, management) to build a real business model."},
			Requirement: catalog.Text{AR: "إتمام 10 مهام يومية بنسبة نجاح 80%", EN: "Finish 10 daily tasks with 80% success"},
			Unlocked:    len(u.CompletedTasks) >= GroupProjectTasks && avg >= GroupProjectAverage,
		},
	}
}
