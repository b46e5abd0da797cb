package domain

// Recipe turns one unit of every ingredient into one result item. Ingredients
// form a multiset: the same name may appear more than once.
type Recipe struct {
	Ingredients []string `json:"ingredients"`
	Result      string   `json:"result"`
}
