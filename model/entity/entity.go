package entity

// Models returns every storefront table model, for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&Product{},
		&CustomComponent{},
		&CartItem{},
		&Order{},
		&OrderItem{},
	}
}
