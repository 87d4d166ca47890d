package headhunter

type Vacancies struct {
	Items []*Vacancy
}

// IDName is the {id, name} pair the API uses for most dictionary values.
type IDName struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Salary is present on a vacancy only when the employer discloses it. All
// fields inside may be null as well.
type Salary struct {
	From     *int   `json:"from,omitempty"`
	To       *int   `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
	Gross    *bool  `json:"gross,omitempty"`
}

// Vacancy holds both the brief form returned by the search endpoint and the
// full form returned by the per-id detail endpoint. Detail-only fields
// (description, key skills, employment) stay empty on search results.
type Vacancy struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Experience IDName `json:"experience,omitempty"`
	Schedule   IDName `json:"schedule,omitempty"`
	Employment IDName `json:"employment,omitempty"`
	// Description contains HTML markup.
	Description string `json:"description,omitempty"`
	KeySkills   []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
		URL  string `json:"url,omitempty"`
	} `json:"employer,omitempty"`
	Salary           *Salary `json:"salary,omitempty"`
	Type             IDName  `json:"type,omitempty"`
	PublishedAt      string  `json:"published_at,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	InitialCreatedAt string  `json:"initial_created_at,omitempty"`
	AlternateURL     string  `json:"alternate_url,omitempty"`
	Archived         bool    `json:"archived,omitempty"`

	// Errors is the error marker the API puts into a detail payload when the
	// request was rejected (captcha, rate limit and so on).
	Errors []map[string]any `json:"errors,omitempty"`
}

// HasErrors reports whether the payload carries the API error marker.
func (va *Vacancy) HasErrors() bool {
	return len(va.Errors) > 0
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

// IDs returns vacancy ids preserving the list order.
func (v *Vacancies) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, vacancy := range v.Items {
		ids = append(ids, vacancy.ID)
	}
	return ids
}

func (v *Vacancies) FindByID(id string) *Vacancy {
	for _, vacancy := range v.Items {
		if vacancy.ID == id {
			return vacancy
		}
	}
	return nil
}
