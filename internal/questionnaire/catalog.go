// Package questionnaire holds the fixed question catalog, the respondent's
// profile and answers, and the text blocks built from them for prompts.
package questionnaire

import "fmt"

// Option is one selectable answer of a question.
type Option struct {
	Key  string // "A", "B" or "C"
	Text string
}

// Label is the text shown to the user and sent to the model, e.g.
// "A: 全く使っていない".
func (o Option) Label() string {
	return o.Key + ": " + o.Text
}

// Question is one catalog entry.
type Question struct {
	ID      string
	Title   string
	Options []Option
}

// Option looks an option up by key.
func (q Question) Option(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Catalog is the ordered list of questions a respondent must answer.
type Catalog struct {
	Questions []Question
}

// Question looks a question up by id.
func (c Catalog) Question(id string) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// IDs returns question ids in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c.Questions))
	for i, q := range c.Questions {
		ids[i] = q.ID
	}
	return ids
}

// DefaultCatalog returns the four survival-diagnosis questions.
func DefaultCatalog() Catalog {
	return Catalog{Questions: []Question{
		{
			ID:    "q1",
			Title: "Q1. あなたの仕事は主にどのタイプですか？",
			Options: []Option{
				{"A", "単純作業が中心（例：データ入力）"},
				{"B", "半分以上が定型業務（例：経理業務）"},
				{"C", "非定型業務や創造的な仕事が中心（例：企画、設計）"},
			},
		},
		{
			ID:    "q2",
			Title: "Q2. あなたの仕事ではAIや自動化ツールを使っていますか？",
			Options: []Option{
				{"A", "全く使っていない"},
				{"B", "一部の業務で使っている"},
				{"C", "多くの業務で活用している"},
			},
		},
		{
			ID:    "q3",
			Title: "Q3. あなたの仕事に必要なスキルはどのタイプですか？",
			Options: []Option{
				{"A", "手順が決まっているスキル（例：工場作業）"},
				{"B", "分析や判断力が必要なスキル（例：マーケティング分析）"},
				{"C", "高度な専門知識や創造力が必要なスキル（例：デザイン、研究）"},
			},
		},
		{
			ID:    "q4",
			Title: "Q4. あなたの会社の業界はAI導入の進行状況がどうですか？",
			Options: []Option{
				{"A", "AI導入が進んでいる（例：IT、金融）"},
				{"B", "一部の領域で導入されている（例：製造業）"},
				{"C", "ほとんど導入が進んでいない"},
			},
		},
	}}
}

// Profile domains.
var (
	Industries = []string{
		"IT・情報通信", "金融・保険", "製造", "建設・不動産", "小売・卸売",
		"医療・福祉", "教育・研究", "公務員", "サービス業", "その他",
	}

	Occupations = []string{
		"管理職",
		"専門・技術職（IT・エンジニア）",
		"専門・技術職（医療・福祉）",
		"専門・技術職（その他）",
		"事務職",
		"営業・販売職",
		"サービス職",
		"生産工程・製造",
		"建設・保守",
		"運輸・配送",
		"その他",
	}

	Skills = []string{
		"IT・プログラミング", "データ分析", "経営・マネジメント",
		"企画・マーケティング", "設計・製造", "営業・接客",
		"医療・介護", "教育・研修", "専門資格", "語学",
	}
)

// Experience bounds, in years in the current occupation.
const (
	MinExperience     = 0
	MaxExperience     = 50
	DefaultExperience = 5
)

// InputError reports a value outside its allowed domain.
type InputError struct {
	Field string
	Value string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
