package service

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/tyler-sommer/stick"
)

// promptTemplate renders the full sampling prompt. The wording is
// deliberately strict: the answer feeds token-level collapsing, so
// the model must reply with a bare candidate name.
const promptTemplate = `{{ backstory }}

{{ question }}

Possible answers:
{% for opt in options %}{{ loop.index }}. {{ opt }}
{% endfor %}
IMPORTANT:
Your answer MUST contain ONLY the candidate's name, exactly as written above.
Do NOT write anything else. Do NOT explain. Do NOT add punctuation.
Return ONLY the name. Example of correct format: obama
Example of INCORRECT format: 'I would vote for Obama.'`

// PromptBuilder turns a respondent and a question into the sampling
// prompt sent to the model.
type PromptBuilder struct {
	env *stick.Env
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{env: stick.New(nil)}
}

// BuildBackstory writes a respondent's demographics as a second-person
// persona. Every attribute is optional; absent ones are skipped
// without leaving placeholder text behind.
func (b *PromptBuilder) BuildBackstory(r *model.Respondent) string {
	parts := []string{}

	if r.Age != nil {
		parts = append(parts, fmt.Sprintf("You are a %d-year-old", *r.Age))
	} else {
		parts = append(parts, "You are a")
	}
	if r.Gender != "" {
		parts = append(parts, strings.ToLower(r.Gender))
	}
	if r.Education != "" {
		parts = append(parts, "with "+strings.ToLower(r.Education)+" education")
	}

	sentence := strings.TrimSpace(strings.Join(parts, " "))
	if r.State != "" {
		sentence += " living in " + r.State
	}
	sentence = strings.TrimSpace(sentence) + "."

	extras := []string{}
	if r.Race != "" {
		extras = append(extras, fmt.Sprintf("Your race is: %s.", r.Race))
	}
	if r.Party != "" {
		extras = append(extras, fmt.Sprintf("You identify with the %s party.", r.Party))
	}
	if r.Ideology != "" {
		extras = append(extras, fmt.Sprintf("Your political ideology is %s.", r.Ideology))
	}
	if r.PoliticalInterest != "" {
		extras = append(extras, fmt.Sprintf("Your interest in politics is described as: %s.", r.PoliticalInterest))
	}
	if r.DiscussPolitics != "" {
		extras = append(extras, fmt.Sprintf("You discuss politics: %s.", r.DiscussPolitics))
	}
	if r.ChurchGoer != "" {
		extras = append(extras, fmt.Sprintf("You attend church: %s.", r.ChurchGoer))
	}
	if r.Religion != "" {
		extras = append(extras, fmt.Sprintf("Your religion is %s.", r.Religion))
	}
	if r.Financially != "" {
		extras = append(extras, fmt.Sprintf("Financially, you feel: %s.", r.Financially))
	}
	if r.Patriotism != "" {
		extras = append(extras, fmt.Sprintf("Your level of patriotism is: %s.", r.Patriotism))
	}

	// Extra attributes in stable order.
	keys := make([]string, 0, len(r.MoreInfo))
	for k := range r.MoreInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		label := capitalizeFirst(strings.ReplaceAll(k, "_", " "))
		extras = append(extras, fmt.Sprintf("%s: %s", label, r.MoreInfo[k]))
	}

	return strings.TrimSpace(strings.Join(append([]string{sentence}, extras...), " "))
}

// BuildPrompt renders the full prompt for one respondent.
func (b *PromptBuilder) BuildPrompt(backstory, questionText string, options []string) (string, error) {
	ctx := map[string]stick.Value{
		"backstory": strings.TrimSpace(backstory),
		"question":  strings.TrimSpace(questionText),
		"options":   options,
	}

	var out strings.Builder
	if err := b.env.Execute(promptTemplate, &out, ctx); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return out.String(), nil
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
