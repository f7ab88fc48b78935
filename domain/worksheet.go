package domain

// Financing describes an amortizing purchase loan. Pointer fields are
// optional and resolved from Assumptions when nil.
type Financing struct {
	DownPaymentPct  *float64 `json:"downPaymentPct,omitempty"`
	InterestRate    float64  `json:"interestRate"`
	LoanTermYears   int      `json:"loanTermYears"`
	ClosingCostsPct *float64 `json:"closingCostsPct,omitempty"`
}

// OperatingExpenses are the recurring holding costs of a rental. Percentages
// apply to effective rental income. InsuranceAnnual defaults to
// Assumptions.InsurancePct of the property value.
type OperatingExpenses struct {
	PropertyTaxesAnnual float64  `json:"propertyTaxesAnnual"`
	InsuranceAnnual     *float64 `json:"insuranceAnnual,omitempty"`
	HOAMonthly          float64  `json:"hoaMonthly"`
	UtilitiesMonthly    float64  `json:"utilitiesMonthly"`
	MaintenancePct      float64  `json:"maintenancePct"`
	ManagementPct       float64  `json:"managementPct"`
	CapExPct            float64  `json:"capExPct"`
}

// CashFlowMetrics is the rental performance block shared by every holding
// strategy result.
type CashFlowMetrics struct {
	GrossIncomeAnnual       float64 `json:"grossIncomeAnnual"`
	VacancyLossAnnual       float64 `json:"vacancyLossAnnual"`
	EffectiveIncomeAnnual   float64 `json:"effectiveIncomeAnnual"`
	OperatingExpensesAnnual float64 `json:"operatingExpensesAnnual"`
	NOI                     float64 `json:"noi"`
	MonthlyPayment          float64 `json:"monthlyPayment"`
	AnnualDebtService       float64 `json:"annualDebtService"`
	MonthlyCashFlow         float64 `json:"monthlyCashFlow"`
	AnnualCashFlow          float64 `json:"annualCashFlow"`
	CashOnCash              float64 `json:"cashOnCash"`
	CapRate                 float64 `json:"capRate"`
	DSCR                    float64 `json:"dscr"`
	ExpenseRatio            float64 `json:"expenseRatio"`
	BreakevenOccupancy      float64 `json:"breakevenOccupancy"`
	CashFlowYield           float64 `json:"cashFlowYield"`
}

// Returns is the long-horizon return block for holding strategies.
type Returns struct {
	HorizonSummary
	TenYearROI    float64          `json:"tenYearRoi"`
	AnnualizedROI float64          `json:"annualizedRoi"`
	Projection    []ProjectionYear `json:"projection"`
}

// Scoring carries the graded metrics and the aggregate deal score.
type Scoring struct {
	DealScore int           `json:"dealScore"`
	Grades    []GradeResult `json:"grades"`
}

// ---- Long-Term Rental ----

type LTRInput struct {
	PurchasePrice      float64 `json:"purchasePrice"`
	MonthlyRent        float64 `json:"monthlyRent"`
	OtherMonthlyIncome float64 `json:"otherMonthlyIncome"`
	VacancyRate        float64 `json:"vacancyRate"`
	Financing
	OperatingExpenses
	GrowthRates
}

type LTRResult struct {
	PurchasePrice     float64 `json:"purchasePrice"`
	DownPayment       float64 `json:"downPayment"`
	LoanAmount        float64 `json:"loanAmount"`
	ClosingCosts      float64 `json:"closingCosts"`
	TotalCashRequired float64 `json:"totalCashRequired"`
	CashFlowMetrics
	GRM            float64 `json:"grm"`
	OnePercentRule float64 `json:"onePercentRule"`
	Returns
	Scoring
}

// ---- Short-Term Rental ----

type STRInput struct {
	PurchasePrice       float64  `json:"purchasePrice"`
	FurnishingBudget    float64  `json:"furnishingBudget"`
	NightlyRate         float64  `json:"nightlyRate"`
	OccupancyRate       float64  `json:"occupancyRate"`
	AverageStayNights   float64  `json:"averageStayNights"`
	CleaningFeePerStay  float64  `json:"cleaningFeePerStay"`
	CleaningCostPerStay float64  `json:"cleaningCostPerStay"`
	PlatformFeePct      *float64 `json:"platformFeePct,omitempty"`
	SuppliesMonthly     float64  `json:"suppliesMonthly"`
	Financing
	OperatingExpenses
	GrowthRates
}

type STRResult struct {
	PurchasePrice     float64 `json:"purchasePrice"`
	DownPayment       float64 `json:"downPayment"`
	LoanAmount        float64 `json:"loanAmount"`
	ClosingCosts      float64 `json:"closingCosts"`
	FurnishingBudget  float64 `json:"furnishingBudget"`
	TotalCashRequired float64 `json:"totalCashRequired"`
	NightsBooked      float64 `json:"nightsBooked"`
	Stays             float64 `json:"stays"`
	RevenuePerNight   float64 `json:"revenuePerNight"`
	CashFlowMetrics
	Returns
	Scoring
}

// ---- BRRRR ----

type BRRRRInput struct {
	PurchasePrice       float64  `json:"purchasePrice"`
	ARV                 float64  `json:"arv"`
	RehabBudget         *float64 `json:"rehabBudget,omitempty"`
	ContingencyPct      *float64 `json:"contingencyPct,omitempty"`
	ClosingCostsPct     *float64 `json:"closingCostsPct,omitempty"`
	RehabMonths         int      `json:"rehabMonths"`
	HoldingCostsMonthly float64  `json:"holdingCostsMonthly"`
	InitialLoanPct      float64  `json:"initialLoanPct"`
	InitialInterestRate float64  `json:"initialInterestRate"`
	RefinanceLTV        float64  `json:"refinanceLtv"`
	RefinanceRate       float64  `json:"refinanceRate"`
	RefinanceTermYears  int      `json:"refinanceTermYears"`
	RefinanceCostsPct   float64  `json:"refinanceCostsPct"`
	MonthlyRent         float64  `json:"monthlyRent"`
	VacancyRate         float64  `json:"vacancyRate"`
	OperatingExpenses
	GrowthRates
}

type BRRRRResult struct {
	PurchasePrice       float64 `json:"purchasePrice"`
	RehabTotal          float64 `json:"rehabTotal"`
	ClosingCosts        float64 `json:"closingCosts"`
	HoldingCosts        float64 `json:"holdingCosts"`
	TotalProjectCost    float64 `json:"totalProjectCost"`
	InitialLoan         float64 `json:"initialLoan"`
	InitialCashInvested float64 `json:"initialCashInvested"`
	RefinanceLoan       float64 `json:"refinanceLoan"`
	RefinanceCosts      float64 `json:"refinanceCosts"`
	CashOut             float64 `json:"cashOut"`
	CashLeftInDeal      float64 `json:"cashLeftInDeal"`
	EquityAfterRefi     float64 `json:"equityAfterRefi"`
	EquityCapture       float64 `json:"equityCapture"`
	InfiniteReturn      bool    `json:"infiniteReturn"`
	CashFlowMetrics
	Returns
	Scoring
}

// ---- Fix & Flip ----

type FlipInput struct {
	ListPrice           float64  `json:"listPrice"`
	PurchasePrice       *float64 `json:"purchasePrice,omitempty"`
	ARV                 float64  `json:"arv"`
	RehabCosts          *float64 `json:"rehabCosts,omitempty"`
	ContingencyPct      *float64 `json:"contingencyPct,omitempty"`
	ClosingCostsPct     *float64 `json:"closingCostsPct,omitempty"`
	HoldingMonths       int      `json:"holdingMonths"`
	HoldingCostsMonthly float64  `json:"holdingCostsMonthly"`
	LoanToCostPct       float64  `json:"loanToCostPct"`
	InterestRate        float64  `json:"interestRate"`
	LoanPointsPct       float64  `json:"loanPointsPct"`
	SellingCostsPct     *float64 `json:"sellingCostsPct,omitempty"`
	CapitalGainsRate    float64  `json:"capitalGainsRate"`
	BuyDiscountPct      *float64 `json:"buyDiscountPct,omitempty"`
}

type FlipResult struct {
	MaximumAllowableOffer float64 `json:"maximumAllowableOffer"`
	SuggestedPrice        float64 `json:"suggestedPrice"`
	PurchasePrice         float64 `json:"purchasePrice"`
	RehabCosts            float64 `json:"rehabCosts"`
	RehabTotal            float64 `json:"rehabTotal"`
	ClosingCosts          float64 `json:"closingCosts"`
	LoanAmount            float64 `json:"loanAmount"`
	LoanPoints            float64 `json:"loanPoints"`
	InterestCost          float64 `json:"interestCost"`
	HoldingCosts          float64 `json:"holdingCosts"`
	TotalProjectCost      float64 `json:"totalProjectCost"`
	TotalCashRequired     float64 `json:"totalCashRequired"`
	SellingCosts          float64 `json:"sellingCosts"`
	SaleProceeds          float64 `json:"saleProceeds"`
	NetProfit             float64 `json:"netProfit"`
	CapitalGainsTax       float64 `json:"capitalGainsTax"`
	AfterTaxProfit        float64 `json:"afterTaxProfit"`
	ROI                   float64 `json:"roi"`
	AnnualizedROI         float64 `json:"annualizedRoi"`
	ProfitMargin          float64 `json:"profitMargin"`
	BreakevenSalePrice    float64 `json:"breakevenSalePrice"`
	Meets70Rule           bool    `json:"meets70Rule"`
	Scoring
}

// ---- House Hack ----

type HouseHackInput struct {
	PurchasePrice   float64 `json:"purchasePrice"`
	TotalUnits      int     `json:"totalUnits"`
	OwnerUnits      int     `json:"ownerUnits"`
	RentPerUnit     float64 `json:"rentPerUnit"`
	OwnerMarketRent float64 `json:"ownerMarketRent"`
	VacancyRate     float64 `json:"vacancyRate"`
	PMIRateAnnual   float64 `json:"pmiRateAnnual"`
	Financing
	OperatingExpenses
	GrowthRates
}

type HouseHackResult struct {
	PurchasePrice         float64 `json:"purchasePrice"`
	DownPayment           float64 `json:"downPayment"`
	LoanAmount            float64 `json:"loanAmount"`
	ClosingCosts          float64 `json:"closingCosts"`
	TotalCashRequired     float64 `json:"totalCashRequired"`
	MonthlyPITI           float64 `json:"monthlyPiti"`
	MonthlyPMI            float64 `json:"monthlyPmi"`
	RentalIncomeMonthly   float64 `json:"rentalIncomeMonthly"`
	NetHousingCostMonthly float64 `json:"netHousingCostMonthly"`
	HousingOffset         float64 `json:"housingOffset"`
	SavingsVsRenting      float64 `json:"savingsVsRenting"`
	LivingInCashOnCash    float64 `json:"livingInCashOnCash"`
	// Full-rental (owner moved out) performance.
	CashFlowMetrics
	Returns
	Scoring
}

// ---- Wholesale ----

type WholesaleInput struct {
	ContractPrice     float64  `json:"contractPrice"`
	ARV               float64  `json:"arv"`
	RehabCosts        *float64 `json:"rehabCosts,omitempty"`
	AssignmentFee     float64  `json:"assignmentFee"`
	EarnestMoney      float64  `json:"earnestMoney"`
	MarketingCosts    float64  `json:"marketingCosts"`
	ClosingCostsPct   *float64 `json:"closingCostsPct,omitempty"`
	SellingCostsPct   *float64 `json:"sellingCostsPct,omitempty"`
	BuyerHoldingCosts float64  `json:"buyerHoldingCosts"`
}

type WholesaleResult struct {
	ContractPrice       float64 `json:"contractPrice"`
	AssignmentFee       float64 `json:"assignmentFee"`
	EndBuyerPrice       float64 `json:"endBuyerPrice"`
	EndBuyerMAO         float64 `json:"endBuyerMao"`
	RehabCosts          float64 `json:"rehabCosts"`
	EndBuyerAllIn       float64 `json:"endBuyerAllIn"`
	EndBuyerProfit      float64 `json:"endBuyerProfit"`
	EndBuyerMargin      float64 `json:"endBuyerMargin"`
	CashAtRisk          float64 `json:"cashAtRisk"`
	WholesalerNetProfit float64 `json:"wholesalerNetProfit"`
	ROI                 float64 `json:"roi"`
	FeeHeadroom         float64 `json:"feeHeadroom"`
	Viable              bool    `json:"viable"`
	Scoring
}
