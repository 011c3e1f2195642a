// Package ingest parses respondent datasets uploaded as CSV. Known
// columns map onto the dedicated demographic fields; anything else is
// preserved under MoreInfo so backstories lose no information.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
)

// knownColumns maps normalized CSV headers to respondent setters.
var knownColumns = map[string]func(*model.Respondent, string){
	"ext_id":             func(r *model.Respondent, v string) { r.ExtID = v },
	"name":               func(r *model.Respondent, v string) { r.Name = v },
	"gender":             func(r *model.Respondent, v string) { r.Gender = v },
	"education":          func(r *model.Respondent, v string) { r.Education = v },
	"state":              func(r *model.Respondent, v string) { r.State = v },
	"race":               func(r *model.Respondent, v string) { r.Race = v },
	"party":              func(r *model.Respondent, v string) { r.Party = v },
	"ideology":           func(r *model.Respondent, v string) { r.Ideology = v },
	"political_interest": func(r *model.Respondent, v string) { r.PoliticalInterest = v },
	"discuss_politics":   func(r *model.Respondent, v string) { r.DiscussPolitics = v },
	"church_goer":        func(r *model.Respondent, v string) { r.ChurchGoer = v },
	"religion":           func(r *model.Respondent, v string) { r.Religion = v },
	"financially":        func(r *model.Respondent, v string) { r.Financially = v },
	"patriotism":         func(r *model.Respondent, v string) { r.Patriotism = v },
	"real_vote":          func(r *model.Respondent, v string) { r.RealVote = v },
}

// ParseRespondents reads a respondent CSV into models for one study.
// The first row must be a header. Empty cells leave fields unset.
func ParseRespondents(r io.Reader, studyID, datasetName string) ([]*model.Respondent, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = normalizeHeader(h)
	}

	var respondents []*model.Respondent
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		respondent := &model.Respondent{
			StudyID:     studyID,
			DatasetName: datasetName,
		}
		for i, cell := range record {
			if i >= len(cols) {
				break
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}

			col := cols[i]
			if col == "age" {
				age, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad age %q", line, value)
				}
				respondent.Age = &age
				continue
			}
			if set, ok := knownColumns[col]; ok {
				set(respondent, value)
				continue
			}
			if respondent.MoreInfo == nil {
				respondent.MoreInfo = make(map[string]string)
			}
			respondent.MoreInfo[col] = value
		}
		respondents = append(respondents, respondent)
	}

	if len(respondents) == 0 {
		return nil, fmt.Errorf("dataset %q has no rows", datasetName)
	}
	return respondents, nil
}

// ParseQuestions reads question stems from the first column of a CSV
// with no header.
func ParseQuestions(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var questions []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}
		body := strings.TrimSpace(record[0])
		if body != "" {
			questions = append(questions, body)
		}
	}
	return questions, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}
