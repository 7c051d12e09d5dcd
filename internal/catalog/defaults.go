package catalog

import "github.com/uillasnr/mobilefinance/internal/model"

// Default returns the starter catalog written by "finance init".
// Icon keys match the app's icon picker.
func Default() []model.Category {
	return []model.Category{
		{ID: "food", Title: "Alimentação", Color: "#F87171", Icon: "restaurant"},
		{ID: "market", Title: "Mercado", Color: "#FBBF24", Icon: "cart"},
		{ID: "transport", Title: "Transporte", Color: "#60A5FA", Icon: "car"},
		{ID: "health", Title: "Saúde", Color: "#34D399", Icon: "medical"},
		{ID: "pharmacy", Title: "Farmácia", Color: "#2DD4BF", Icon: "pharmacy"},
		{ID: "leisure", Title: "Lazer", Color: "#A78BFA", Icon: "game-controller"},
		{ID: "sport", Title: "Esporte", Color: "#F472B6", Icon: "fitness"},
		{ID: "pets", Title: "Pets", Color: "#FB923C", Icon: "paw"},
		{ID: "salary", Title: "Salário", Color: "#22C55E", Icon: "cash"},
		{ID: "savings", Title: "Investimentos", Color: "#6200EE", Icon: "savings"},
	}
}
