package domain

// College is one row of the college directory dataset.
type College struct {
	CollegeID   string `json:"college_id"`
	Name        string `json:"college_name"`
	Division    string `json:"division"`
	District    string `json:"district"`
	CollegeType string `json:"college_type"`
	Address     string `json:"address,omitempty"`
	Website     string `json:"website,omitempty"`
}
