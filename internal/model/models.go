package model

// All lists every table in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Wallet{},
		&Product{},
		&InputFieldTemplate{},
		&ProductInputDef{},
		&TierPricingRule{},
		&Order{},
		&OrderItem{},
		&LedgerEntry{},
		&CancellationRequest{},
		&OrderItemMessage{},
		&PaymentTransaction{},
		&Customer{},
		&CustomerKeyword{},
	}
}
