package seed

import "github.com/Dan9191/risk-engine/internal/models"

// Persona describes one demo individual. Band drives the generated spending and
// borrowing behaviour; the stored score is always computed from the indicators.
type Persona struct {
	Name                 string
	Occupation           string
	Income               float64
	EmployerContribution float64
	Band                 models.Status
	Scenario             string

	VarianceDays      int
	CoverageRatio     *float64
	Utilization       *float64
	RemittanceDrop    float64
	MicroCreditTx     int
	Inquiries         int
	UtilityLagDays    int
	RiskyMerchantTx   int
	SIPStopped        bool
	SIPScore          *float64
	Liquidation       bool
	Pledge            bool
	ContributionGap   bool
	Tax               models.TaxStatus
	JobSearch         float64
	Disaster          bool
	InfraFailure      bool
	PostalCode        string
	InsuranceLapsed   bool
	ATMVelocity       *float64
	SpendReductionPct float64
}

var ptr = models.Float

// Personas is the stock demo population
var Personas = []Persona{
	{Name: "Ananya Das", Occupation: "Junior Developer", Income: 45000, EmployerContribution: 1800, Band: models.StatusCritical, Scenario: "Severe Liquidity Crisis", VarianceDays: 8, CoverageRatio: ptr(0.5), Utilization: ptr(88)},
	{Name: "Ramesh Kumar", Occupation: "Factory Worker", Income: 18000, EmployerContribution: 900, Band: models.StatusCritical, Scenario: "Multiple Micro-Loans", MicroCreditTx: 15, Utilization: ptr(95), ATMVelocity: ptr(2.4)},
	{Name: "Vikram Malhotra", Occupation: "Marketing Manager", Income: 150000, EmployerContribution: 3000, Band: models.StatusCritical, Scenario: "Debt Trap - High Utilization", Utilization: ptr(92), Inquiries: 12},
	{Name: "Karan Mehra", Occupation: "Unemployed", Band: models.StatusEmergency, Scenario: "Job Loss + Gambling", UtilityLagDays: 60, RiskyMerchantTx: 25, JobSearch: 0.95, InsuranceLapsed: true},
	{Name: "Rahul Iyer", Occupation: "Retired Professional", Income: 30000, Band: models.StatusCritical, Scenario: "Asset Liquidation", Liquidation: true, SIPStopped: true},
	{Name: "Arjun Rao", Occupation: "Laid-off Engineer", Income: 80000, Band: models.StatusEmergency, Scenario: "Sudden Job Loss", ContributionGap: true, JobSearch: 0.9, UtilityLagDays: 30},
	{Name: "Ravi Gowda", Occupation: "Agriculture", Income: 12000, Band: models.StatusCritical, Scenario: "Crop Failure + Debt", Disaster: true, MicroCreditTx: 8, PostalCode: "500001"},
	{Name: "Deepak Chahal", Occupation: "Gig Driver", Income: 22000, Band: models.StatusCritical, Scenario: "Income Volatility", RemittanceDrop: 65, VarianceDays: 12},
	{Name: "Priya Sharma", Occupation: "Freelancer", Income: 35000, Band: models.StatusCritical, Scenario: "Irregular Income + High EMI", RemittanceDrop: 50, Utilization: ptr(78)},
	{Name: "Amit Bansal", Occupation: "Day Trader", Income: 500000, Band: models.StatusCritical, Scenario: "Trading Losses + Hard Inquiries", Inquiries: 18, Liquidation: true},

	{Name: "Suresh Reddy", Occupation: "Delivery Partner", Income: 25000, Band: models.StatusWarning, Scenario: "Remittance Volatility", RemittanceDrop: 40, MicroCreditTx: 5},
	{Name: "Sneha Patil", Occupation: "College Student", Income: 5000, Band: models.StatusWarning, Scenario: "Student Debt Burden", Utilization: ptr(45), MicroCreditTx: 6},
	{Name: "Pooja Hegde", Occupation: "Social Media Influencer", Income: 200000, Band: models.StatusWarning, Scenario: "Lifestyle Inflation", RiskyMerchantTx: 8, Utilization: ptr(55)},
	{Name: "Manish Tiwari", Occupation: "Bank Manager", Income: 90000, EmployerContribution: 2500, Band: models.StatusWarning, Scenario: "SIP Stoppage Signal", SIPStopped: true, Pledge: true},
	{Name: "Zara Khan", Occupation: "Consultant", Income: 120000, Band: models.StatusWarning, Scenario: "Tax Compliance Gap", Tax: models.TaxDelayed, Utilization: ptr(48)},
	{Name: "Sanjay Kapoor", Occupation: "Restaurant Owner", Income: 80000, Band: models.StatusWarning, Scenario: "Business Slowdown", RemittanceDrop: 30, UtilityLagDays: 15, SpendReductionPct: 35},
	{Name: "Neha Joshi", Occupation: "Music Teacher", Income: 40000, EmployerContribution: 1200, Band: models.StatusWarning, Scenario: "Seasonal Liquidity Dip", VarianceDays: 10, CoverageRatio: ptr(1.2)},

	{Name: "Rajesh Khanna", Occupation: "Government Employee", Income: 70000, EmployerContribution: 3500, Band: models.StatusSafe, Scenario: "Stable Income", CoverageRatio: ptr(3.5), Utilization: ptr(25)},
	{Name: "Meera Nair", Occupation: "School Teacher", Income: 50000, EmployerContribution: 2000, Band: models.StatusSafe, Scenario: "Conservative Spender", CoverageRatio: ptr(4), Utilization: ptr(18)},
	{Name: "Vijay Kumar", Occupation: "IT Professional", Income: 110000, EmployerContribution: 4500, Band: models.StatusSafe, Scenario: "Balanced Profile", CoverageRatio: ptr(3), Utilization: ptr(30)},
	{Name: "Karthik Subramanian", Occupation: "Accountant", Income: 60000, EmployerContribution: 2400, Band: models.StatusSafe, Scenario: "Disciplined Saver", CoverageRatio: ptr(5), Utilization: ptr(15)},

	{Name: "Kabir Singh", Occupation: "Senior Doctor", Income: 300000, Band: models.StatusClean, Scenario: "High Income Professional", CoverageRatio: ptr(8), Utilization: ptr(12), SIPScore: ptr(1)},
	{Name: "Ravi Shankar", Occupation: "Senior Architect", Income: 250000, EmployerContribution: 10000, Band: models.StatusClean, Scenario: "Stable High Earner", CoverageRatio: ptr(7.5), Utilization: ptr(10)},
	{Name: "Sunita Rao", Occupation: "Surgeon", Income: 450000, Band: models.StatusClean, Scenario: "Medical Professional", CoverageRatio: ptr(10), Utilization: ptr(8)},

	{Name: "Flood Relief Case", Occupation: "Shop Assistant", Income: 30000, EmployerContribution: 1200, Band: models.StatusCritical, Scenario: "Natural Disaster", Disaster: true, InfraFailure: true, PostalCode: "400001"},
	{Name: "Zero Income Case", Occupation: "Unemployed Student", Band: models.StatusCritical, Scenario: "No Income Source", MicroCreditTx: 10},
	{Name: "Ultra Net Worth Case", Occupation: "CEO", Income: 5000000, EmployerContribution: 100000, Band: models.StatusClean, Scenario: "Ultra High Net Worth", CoverageRatio: ptr(50)},
}
