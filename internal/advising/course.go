// Package advising holds the course-enrollment state the agent's tools act
// on. The state object is injected into each tool handler; nothing here is
// ambient or global, so concurrent queries and test isolation both work.
package advising

// Course is one entry of the registration catalog.
type Course struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Credits int    `json:"credits"`
}

// DefaultCreditLimit caps the total credits a schedule may carry unless
// the config overrides it.
const DefaultCreditLimit = 18

// DefaultCatalog seeds stores when the config does not supply one.
func DefaultCatalog() []Course {
	return []Course{
		{Code: "CS101", Title: "Introduction to Programming", Credits: 4},
		{Code: "CS201", Title: "Data Structures", Credits: 4},
		{Code: "MATH210", Title: "Discrete Mathematics", Credits: 3},
		{Code: "PHYS150", Title: "Mechanics", Credits: 4},
		{Code: "HIST110", Title: "World History", Credits: 3},
		{Code: "ENGL105", Title: "Academic Writing", Credits: 3},
		{Code: "BIO120", Title: "General Biology", Credits: 4},
	}
}
