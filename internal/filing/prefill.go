package filing

// Prefill is the government-held data returned for a PAN before return
// preparation. Field names and nesting are part of the external contract.
type Prefill struct {
	PersonalInfo   PersonalInfo   `json:"personalInfo"`
	Salary         Salary         `json:"salary"`
	InterestIncome InterestIncome `json:"interestIncome"`
	TDS            TDS            `json:"tds"`
	AdvanceTax     AdvanceTax     `json:"advanceTax"`
	AIS            AIS            `json:"ais"`
	TIS            TIS            `json:"tis"`
	Section80C     Section80C     `json:"section80C"`
	Section80D     Section80D     `json:"section80D"`
	HouseProperty  HouseProperty  `json:"houseProperty"`
}

type PersonalInfo struct {
	PAN     string  `json:"pan"`
	Name    string  `json:"name"`
	DOB     string  `json:"dob"`
	Aadhaar string  `json:"aadhaar"`
	Email   string  `json:"email"`
	Mobile  string  `json:"mobile"`
	Address Address `json:"address"`
}

type Address struct {
	FlatNo       string `json:"flatNo"`
	BuildingName string `json:"buildingName"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

type Salary struct {
	Employers        []Employer `json:"employers"`
	TotalGrossSalary int64      `json:"totalGrossSalary"`
	TotalExemptions  int64      `json:"totalExemptions"`
	NetSalary        int64      `json:"netSalary"`
}

type Employer struct {
	EmployerName      string `json:"employerName"`
	TAN               string `json:"tan"`
	GrossSalary       int64  `json:"grossSalary"`
	Exemptions        int64  `json:"exemptions"`
	ProfessionalTax   int64  `json:"professionalTax"`
	StandardDeduction int64  `json:"standardDeduction"`
}

type InterestIncome struct {
	SavingsAccountInterest int64 `json:"savingsAccountInterest"`
	FDInterest             int64 `json:"fdInterest"`
	TotalInterest          int64 `json:"totalInterest"`
}

type TDS struct {
	Salary   []SalaryTDS `json:"salary"`
	Others   []OtherTDS  `json:"others"`
	TotalTDS int64       `json:"totalTDS"`
}

type SalaryTDS struct {
	EmployerTAN string `json:"employerTan"`
	AmountPaid  int64  `json:"amountPaid"`
	TDSDeducted int64  `json:"tdsDeducted"`
	Quarter     string `json:"quarter"`
}

type OtherTDS struct {
	DeductorTAN string `json:"deductorTan"`
	Nature      string `json:"nature"`
	AmountPaid  int64  `json:"amountPaid"`
	TDSDeducted int64  `json:"tdsDeducted"`
}

type AdvanceTax struct {
	Payments        []AdvanceTaxPayment `json:"payments"`
	TotalAdvanceTax int64               `json:"totalAdvanceTax"`
}

type AdvanceTaxPayment struct {
	BSRCode     string `json:"bsrCode"`
	ChallanDate string `json:"challanDate"`
	Amount      int64  `json:"amount"`
}

type AIS struct {
	SalaryInformation   bool   `json:"salaryInformation"`
	InterestInformation bool   `json:"interestInformation"`
	DividendInformation bool   `json:"dividendInformation"`
	LastUpdated         string `json:"lastUpdated"`
}

type TIS struct {
	TaxPayments bool   `json:"taxPayments"`
	Refunds     bool   `json:"refunds"`
	LastUpdated string `json:"lastUpdated"`
}

type Section80C struct {
	PPF           int64 `json:"ppf"`
	ELSS          int64 `json:"elss"`
	LifeInsurance int64 `json:"lifeInsurance"`
	Total         int64 `json:"total"`
}

type Section80D struct {
	SelfHealthInsurance    int64 `json:"selfHealthInsurance"`
	ParentsHealthInsurance int64 `json:"parentsHealthInsurance"`
	Total                  int64 `json:"total"`
}

type HouseProperty struct {
	SelfOccupied bool   `json:"selfOccupied"`
	Address      string `json:"address"`
	LoanInterest int64  `json:"loanInterest"`
	LenderPAN    string `json:"lenderPan"`
}

// GeneratePrefill returns the synthetic prefill for pan. Only
// personalInfo.pan depends on the input; the assessment year does not change
// the fixture.
func GeneratePrefill(pan, _ string) *Prefill {
	return &Prefill{
		PersonalInfo: PersonalInfo{
			PAN:     pan,
			Name:    "RAJESH KUMAR SHARMA",
			DOB:     "1985-04-15",
			Aadhaar: "XXXX-XXXX-5678",
			Email:   "rajesh.sharma@email.com",
			Mobile:  "+91-98765XXXXX",
			Address: Address{
				FlatNo:       "A-204",
				BuildingName: "Sunshine Apartments",
				Street:       "MG Road",
				City:         "MUMBAI",
				State:        "MAHARASHTRA",
				Pincode:      "400001",
			},
		},
		Salary: Salary{
			Employers: []Employer{{
				EmployerName:      "TECH SOLUTIONS PVT LTD",
				TAN:               "MUMB12345D",
				GrossSalary:       1500000,
				Exemptions:        50000,
				ProfessionalTax:   2500,
				StandardDeduction: 50000,
			}},
			TotalGrossSalary: 1500000,
			TotalExemptions:  50000,
			NetSalary:        1397500,
		},
		InterestIncome: InterestIncome{
			SavingsAccountInterest: 15000,
			FDInterest:             45000,
			TotalInterest:          60000,
		},
		TDS: TDS{
			Salary: []SalaryTDS{{
				EmployerTAN: "MUMB12345D",
				AmountPaid:  1500000,
				TDSDeducted: 125000,
				Quarter:     "Q4",
			}},
			Others: []OtherTDS{{
				DeductorTAN: "DELB67890C",
				Nature:      "Interest on Securities",
				AmountPaid:  45000,
				TDSDeducted: 4500,
			}},
			TotalTDS: 129500,
		},
		AdvanceTax: AdvanceTax{
			Payments: []AdvanceTaxPayment{{
				BSRCode:     "0123456",
				ChallanDate: "2024-09-15",
				Amount:      25000,
			}},
			TotalAdvanceTax: 25000,
		},
		AIS: AIS{
			SalaryInformation:   true,
			InterestInformation: true,
			DividendInformation: false,
			LastUpdated:         "2024-06-30",
		},
		TIS: TIS{
			TaxPayments: true,
			Refunds:     false,
			LastUpdated: "2024-06-30",
		},
		Section80C: Section80C{
			PPF:           100000,
			ELSS:          50000,
			LifeInsurance: 25000,
			Total:         175000,
		},
		Section80D: Section80D{
			SelfHealthInsurance:    25000,
			ParentsHealthInsurance: 50000,
			Total:                  75000,
		},
		HouseProperty: HouseProperty{
			SelfOccupied: true,
			Address:      "A-204, Sunshine Apartments, MG Road, Mumbai",
			LoanInterest: 200000,
			LenderPAN:    "HDFC0001234",
		},
	}
}
