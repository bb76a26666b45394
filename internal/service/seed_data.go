package service

import "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"

// BaselineProducts is the catalog written into an empty product collection.
func BaselineProducts() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Notebook Dell Inspiron", SKU: "NB-DELL-001", Category: "Eletrônicos", Quantity: 45, MinQuantity: 10, Price: 3500.00, Supplier: "Dell Brasil", LastUpdated: "2025-11-05"},
		{ID: "2", Name: "Mouse Logitech MX", SKU: "MS-LOG-002", Category: "Periféricos", Quantity: 8, MinQuantity: 15, Price: 250.00, Supplier: "Logitech", LastUpdated: "2025-11-04"},
		{ID: "3", Name: "Teclado Mecânico RGB", SKU: "KB-RGB-003", Category: "Periféricos", Quantity: 120, MinQuantity: 20, Price: 450.00, Supplier: "Redragon", LastUpdated: "2025-11-06"},
		{ID: "4", Name: `Monitor LG 27"`, SKU: "MN-LG-004", Category: "Eletrônicos", Quantity: 5, MinQuantity: 8, Price: 1200.00, Supplier: "LG Electronics", LastUpdated: "2025-11-03"},
		{ID: "5", Name: "Cadeira Gamer", SKU: "CH-GAM-005", Category: "Móveis", Quantity: 30, MinQuantity: 10, Price: 890.00, Supplier: "DT3 Sports", LastUpdated: "2025-11-05"},
		{ID: "6", Name: "Webcam HD 1080p", SKU: "WC-HD-006", Category: "Periféricos", Quantity: 3, MinQuantity: 12, Price: 320.00, Supplier: "Logitech", LastUpdated: "2025-11-02"},
	}
}

// BaselineUsers is the staff list written into an empty user collection.
func BaselineUsers() []model.User {
	return []model.User{
		{ID: "1", Name: "João Silva", Email: "joao.silva@example.com", Role: "Gerente de Estoque", Department: "Estoque", Phone: "11 98765-4321", Status: model.UserStatusActive, CreatedAt: "2025-10-01"},
		{ID: "2", Name: "Maria Oliveira", Email: "maria.oliveira@example.com", Role: "Analista de Estoque", Department: "Estoque", Phone: "11 98765-4322", Status: model.UserStatusActive, CreatedAt: "2025-10-02"},
		{ID: "3", Name: "Pedro Santos", Email: "pedro.santos@example.com", Role: "Técnico de Suporte", Department: "Tecnologia da Informação", Phone: "11 98765-4323", Status: model.UserStatusActive, CreatedAt: "2025-10-03"},
	}
}
