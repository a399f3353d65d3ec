package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Studio{},
		&User{},
		&WorkingHours{},
		&Customer{},
		&CustomerNote{},
		&CatalogItem{},
		&StaffMember{},
		&Attendance{},
		&Reward{},
		&Contract{},
		&ContractNote{},
		&ContractService{},
		&Appointment{},
		&RetouchItem{},
		&RetouchNote{},
		&Transaction{},
		&AuditLog{},
		&ReminderLog{},
	}
}
