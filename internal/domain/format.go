package domain

import "encoding/json"

type productView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// FormatProduct renders the short JSON form used by the seed and import tools.
func FormatProduct(p Product) string {
	out, err := json.Marshal(productView{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price.StringFixed(MoneyScale),
	})
	if err != nil {
		return p.Name
	}
	return string(out)
}
