package models

// Drug is the canonical catalog record, independent of which source
// produced it. The JSON field names are the contract with the frontend
// and must stay stable across runs.
type Drug struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	IngredientCode string  `json:"ingredientCode"`
	IngredientName string  `json:"ingredientName"`
	Price          int     `json:"price"`
	Manufacturer   string  `json:"manufacturer"`
	Category       string  `json:"category"`
	Image          *string `json:"image"`
}

// Snapshot is the persisted catalog document. TotalCount always equals
// len(Drugs). LastUpdated records when the file was produced, not how
// current the upstream data is.
type Snapshot struct {
	LastUpdated string `json:"lastUpdated"`
	TotalCount  int    `json:"totalCount"`
	Drugs       []Drug `json:"drugs"`
}

// Comparison pairs a drug with the cheapest product sharing its main
// ingredient.
type Comparison struct {
	Original       Drug   `json:"original"`
	Cheapest       Drug   `json:"cheapest"`
	Alternatives   []Drug `json:"alternatives"`
	SavingsPerUnit int    `json:"savingsPerUnit"`
}
