package memory

import "pousada/internal/core"

var demoUnits = []core.RawUnit{
	{ID: "chale-1", Name: "Chalé Beija-Flor", BasePrice: "280.00", WeekendPrice: "350.00", HolidayPrice: "420.00", CheckInTime: "14:00", CheckOutTime: "12:00"},
	{ID: "chale-2", Name: "Chalé Ipê", BasePrice: "240.00", WeekendPrice: "300.00", CheckInTime: "14:00", CheckOutTime: "12:00"},
	{ID: "suite-mar", Name: "Suíte Mar", BasePrice: "180.00", CheckInTime: "15:00", CheckOutTime: "11:00"},
}

var demoTransactions = []core.RawTransaction{
	{ID: "tx-001", Type: "INCOME", Category: "LODGING", Description: "Reserva Chalé Beija-Flor", Amount: "1050.00", DueDate: "2025-01-10", PaidDate: "2025-01-10"},
	{ID: "tx-002", Type: "EXPENSE", Category: "UTILITIES", Description: "Conta de luz", Amount: "412.37", DueDate: "2025-01-15", PaidDate: "2025-01-14"},
	{ID: "tx-003", Type: "EXPENSE", Category: "SALARY", Description: "Camareira", Amount: "1800.00", DueDate: "2025-02-05", PaidDate: "2025-02-05"},
	{ID: "tx-004", Type: "INCOME", Category: "LODGING", Description: "Reserva Suíte Mar", Amount: "540.00", DueDate: "2025-02-20"},
	{ID: "tx-005", Type: "EXPENSE", Category: "MAINTENANCE", Description: "Reparo da bomba da piscina", Amount: "650.00", DueDate: "2025-03-01"},
	{ID: "tx-006", Type: "EXPENSE", Category: "SUPPLIES", Description: "Enxoval", Amount: "320.90", DueDate: "2025-03-12"},
}
