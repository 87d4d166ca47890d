package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/denisxab/finding-favorite-job/internal/headhunter"
	"github.com/denisxab/finding-favorite-job/internal/store"
)

// The API reports timestamps like 2024-01-02T15:04:05+0300. The offset is
// dropped and the local part kept as-is.
var tzSuffix = regexp.MustCompile(`\+.+`)

func parseLocalTime(s string) (time.Time, error) {
	return time.Parse(store.TimeLayout, tzSuffix.ReplaceAllString(s, ""))
}

// normalizeVacancy converts a raw detail payload into a storable row:
// dictionary names are flattened, the HTML description becomes markdown,
// skill names collapse into one JSON string and timestamps lose their
// timezone.
func normalizeVacancy(v *headhunter.Vacancy) (*store.Vacancy, error) {
	if v.ID == "" {
		return nil, errors.New("payload without vacancy id")
	}

	description, err := htmltomarkdown.ConvertString(v.Description)
	if err != nil {
		return nil, fmt.Errorf("converting description: %w", err)
	}

	keySkills := ""
	if len(v.KeySkills) > 0 {
		skills := make([]string, 0, len(v.KeySkills))
		for _, skill := range v.KeySkills {
			skills = append(skills, skill.Name)
		}
		encoded, err := json.Marshal(skills)
		if err != nil {
			return nil, fmt.Errorf("encoding key skills: %w", err)
		}
		keySkills = string(encoded)
	}

	publishedAt, err := parseLocalTime(v.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing published_at: %w", err)
	}
	createdAt, err := parseLocalTime(v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	initialCreatedAt, err := parseLocalTime(v.InitialCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing initial_created_at: %w", err)
	}

	row := &store.Vacancy{
		ID:               v.ID,
		Experience:       v.Experience.Name,
		Schedule:         v.Schedule.Name,
		Employment:       v.Employment.Name,
		Description:      description,
		KeySkills:        keySkills,
		EmployerID:       v.Employer.ID,
		EmployerName:     v.Employer.Name,
		EmployerURL:      v.Employer.URL,
		PublishedAt:      publishedAt,
		CreatedAt:        createdAt,
		InitialCreatedAt: initialCreatedAt,
		TypeOpen:         v.Type.ID,
	}

	if v.Salary != nil {
		row.SalaryFrom = v.Salary.From
		row.SalaryTo = v.Salary.To
		if v.Salary.Currency != "" {
			currency := v.Salary.Currency
			row.SalaryCurrency = &currency
		}
		row.SalaryGross = v.Salary.Gross
	}

	return row, nil
}
