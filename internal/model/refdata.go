package model

// Category groups expenses inside a rubro.
type Category struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	RubroID *int64 `json:"rubro_id"`
}

// Provider is a vendor expenses can be attributed to.
type Provider struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	CUIT string `json:"cuit"`
}

// Rubro is a top-level classification tag, broader than a category.
type Rubro struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
