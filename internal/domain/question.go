package domain

// Question is one item of the fixed assessment questionnaire.
type Question struct {
	Text  string `json:"question"`
	Trait string `json:"riasec_type"`
}

// QuestionBank is an immutable ordered questionnaire. Its length bounds the
// session cursor.
type QuestionBank []Question

func (b QuestionBank) Len() int { return len(b) }

// DefaultQuestionBank returns the standard 24-item RIASEC questionnaire,
// four questions per trait.
func DefaultQuestionBank() QuestionBank {
	return QuestionBank{
		{Text: "I enjoy working with my hands to build or repair things.", Trait: "R"},
		{Text: "I like to analyze data and solve complex problems.", Trait: "I"},
		{Text: "I enjoy creating original artwork or creative writing.", Trait: "A"},
		{Text: "I like to help others and work in teams.", Trait: "S"},
		{Text: "I enjoy leading projects and convincing others.", Trait: "E"},
		{Text: "I prefer organized, structured work environments.", Trait: "C"},
		{Text: "I like working outdoors and with animals.", Trait: "R"},
		{Text: "I enjoy conducting research and experiments.", Trait: "I"},
		{Text: "I like to write stories, poems, or music.", Trait: "A"},
		{Text: "I enjoy teaching and mentoring others.", Trait: "S"},
		{Text: "I like to start new businesses or projects.", Trait: "E"},
		{Text: "I prefer following clear procedures and guidelines.", Trait: "C"},
		{Text: "I enjoy physical activities and sports.", Trait: "R"},
		{Text: "I like to study scientific concepts and theories.", Trait: "I"},
		{Text: "I enjoy photography and visual design.", Trait: "A"},
		{Text: "I like to volunteer for community service.", Trait: "S"},
		{Text: "I enjoy sales and business negotiations.", Trait: "E"},
		{Text: "I prefer working with numbers and data entry.", Trait: "C"},
		{Text: "I like to work with tools and machinery.", Trait: "R"},
		{Text: "I enjoy laboratory work and scientific analysis.", Trait: "I"},
		{Text: "I like to perform in front of audiences.", Trait: "A"},
		{Text: "I enjoy counseling and helping people with problems.", Trait: "S"},
		{Text: "I like to manage teams and coordinate projects.", Trait: "E"},
		{Text: "I prefer organized filing and record keeping.", Trait: "C"},
	}
}

// CareerSuggestions maps each dominant trait to an ordered list of careers
// used to decorate completed assessment results.
var CareerSuggestions = map[string][]string{
	"R": {"Engineer", "Carpenter", "Mechanic", "Farmer", "Pilot"},
	"I": {"Scientist", "Doctor", "Researcher", "Analyst", "Psychologist"},
	"A": {"Artist", "Writer", "Designer", "Musician", "Actor"},
	"S": {"Teacher", "Counselor", "Social Worker", "Nurse", "Therapist"},
	"E": {"Manager", "Salesperson", "Entrepreneur", "Lawyer", "Executive"},
	"C": {"Accountant", "Administrator", "Data Entry Clerk", "Bank Teller", "Secretary"},
}

// ScholarshipFieldsByTrait maps each trait to scholarship fields considered
// relevant for it, used by the keyword-based scholarship recommender.
var ScholarshipFieldsByTrait = map[string][]string{
	"R": {"Engineering", "Technology", "Construction", "Automotive", "Manufacturing", "Agriculture"},
	"I": {"Science", "Research", "Mathematics", "Medicine", "Laboratory", "Environmental"},
	"A": {"Art", "Design", "Music", "Creative", "Media", "Fashion", "Film"},
	"S": {"Education", "Social Work", "Healthcare", "Psychology", "Community Service", "Counseling"},
	"E": {"Business", "Entrepreneurship", "Management", "Leadership", "Marketing", "Finance"},
	"C": {"Accounting", "Administration", "Data Management", "Office", "Clerical", "Organization"},
}
