// Package model defines the entities of the foodservice dataset and their
// enumerations. All monetary fields use decimal to avoid float drift in
// aggregations.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Region is one of the four US sales regions.
type Region string

const (
	RegionNortheast Region = "Northeast"
	RegionSoutheast Region = "Southeast"
	RegionMidwest   Region = "Midwest"
	RegionWest      Region = "West"
)

// Regions lists every region in a stable order.
var Regions = []Region{RegionNortheast, RegionSoutheast, RegionMidwest, RegionWest}

// DistributorType classifies a distributor's footprint.
type DistributorType string

const (
	DistributorNational  DistributorType = "National"
	DistributorRegional  DistributorType = "Regional"
	DistributorSpecialty DistributorType = "Specialty"
)

// RevenueTier buckets operators by purchasing volume.
type RevenueTier string

const (
	TierSmall      RevenueTier = "Small"
	TierMedium     RevenueTier = "Medium"
	TierLarge      RevenueTier = "Large"
	TierEnterprise RevenueTier = "Enterprise"
)

// RepTier is a sales rep's seniority level.
type RepTier string

const (
	RepJunior   RepTier = "Junior"
	RepSenior   RepTier = "Senior"
	RepDirector RepTier = "Director"
)

// AccountType is the CRM relationship status of an operator.
type AccountType string

const (
	AccountCustomer AccountType = "Customer"
	AccountProspect AccountType = "Prospect"
	AccountFormer   AccountType = "Former Customer"
)

// Stage is a CRM opportunity pipeline stage.
type Stage string

const (
	StageProspecting   Stage = "Prospecting"
	StageQualification Stage = "Qualification"
	StageProposal      Stage = "Proposal"
	StageNegotiation   Stage = "Negotiation"
	StageClosedWon     Stage = "Closed Won"
	StageClosedLost    Stage = "Closed Lost"
)

// OpenStages lists the non-terminal stages in pipeline order.
var OpenStages = []Stage{StageProspecting, StageQualification, StageProposal, StageNegotiation}

// Order returns the stage's position in the pipeline. Both terminal stages
// sort after every open stage.
func (s Stage) Order() int {
	switch s {
	case StageProspecting:
		return 0
	case StageQualification:
		return 1
	case StageProposal:
		return 2
	case StageNegotiation:
		return 3
	default:
		return 4
	}
}

// Closed reports whether the stage is terminal.
func (s Stage) Closed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// WinProbability maps a stage to its fixed probability percentage. Won is
// pinned to 100 and Lost to 0 regardless of prior stage.
func (s Stage) WinProbability() int {
	switch s {
	case StageProspecting:
		return 10
	case StageQualification:
		return 25
	case StageProposal:
		return 60
	case StageNegotiation:
		return 80
	case StageClosedWon:
		return 100
	default:
		return 0
	}
}

// ActivityType categorizes a CRM touchpoint.
type ActivityType string

const (
	ActivityCall      ActivityType = "Call"
	ActivityEmail     ActivityType = "Email"
	ActivityMeeting   ActivityType = "Meeting"
	ActivityDemo      ActivityType = "Demo"
	ActivitySiteVisit ActivityType = "Site Visit"
)

// AccountStatus tracks whether the CRM relationship is live.
type AccountStatus string

const (
	AccountActive  AccountStatus = "Active"
	AccountChurned AccountStatus = "Churned"
)

// Territory is a sales territory covering one US state.
type Territory struct {
	TerritoryID   string
	TerritoryName string
	Region        Region
	State         string
	Timezone      string
}

// Distributor is a foodservice distribution company.
type Distributor struct {
	DistributorID   string
	DistributorName string
	DistributorType DistributorType
	HQState         string
	TerritoryID     string
	FoundedYear     int
	Active          bool
}

// Product is one SKU in the catalog.
type Product struct {
	ProductID    string
	ProductName  string
	Category     string
	Subcategory  string
	Brand        string
	UnitOfSale   string
	ListPrice   decimal.Decimal
	CostPerUnit decimal.Decimal
	LaunchDate  time.Time
	Active      bool
}

// SalesRep belongs to a strict Director > Senior > Junior hierarchy.
// ManagerID is empty only for Directors.
type SalesRep struct {
	RepID       string
	RepName     string
	Email       string
	RepTier     RepTier
	Region      Region
	TerritoryID string
	ManagerID   string
	HireDate    time.Time
	QuotaAnnual decimal.Decimal
	Active      bool
}

// Operator is a foodservice establishment that buys product.
type Operator struct {
	OperatorID           string
	OperatorName         string
	OperatorType         string
	CuisineType          string
	City                 string
	State                string
	TerritoryID          string
	RevenueTier          RevenueTier
	PrimaryDistributorID string
	OpenedDate           time.Time
	Active               bool
}

// Account is the CRM mirror of an operator. LastActivityDate is never
// before CreatedDate; Status is Churned only for former customers.
type Account struct {
	AccountID        string
	OperatorID       string
	AccountName      string
	AccountType      AccountType
	OwnerRepID       string
	TerritoryID      string
	CreatedDate      time.Time
	LastActivityDate time.Time
	Status           AccountStatus
}

// Opportunity is a CRM deal. LossReason and Competitor are set only when the
// stage is Closed Lost; CloseDate is set only for closed deals.
type Opportunity struct {
	OpportunityID string
	AccountID     string
	OwnerRepID    string
	Name          string
	Stage         Stage
	Amount        decimal.Decimal
	Probability   int
	CreatedDate   time.Time
	CloseDate     time.Time
	HasCloseDate  bool
	LeadSource    string
	LossReason    string
	Competitor    string
	NextSteps     string
	ProductFocus  string
}

// Activity is a single CRM touchpoint, optionally tied to an opportunity.
type Activity struct {
	ActivityID    string
	AccountID     string
	OpportunityID string
	RepID         string
	ActivityType  ActivityType
	ActivityDate  time.Time
	DurationMin   int
	Subject       string
	Outcome       string
}

// Shipment is one weekly fact row: a product shipped by a distributor to an
// operator during the week ending on a Saturday.
type Shipment struct {
	ShipmentID    int64
	ShipmentDate  time.Time
	WeekEnding    time.Time
	DistributorID string
	OperatorID    string
	ProductID     string
	Quantity      int
	GrossRevenue  decimal.Decimal
	Discounts     decimal.Decimal
	Returns       decimal.Decimal
	NetRevenue    decimal.Decimal
	COGS          decimal.Decimal
}

// Dataset bundles every generated table.
type Dataset struct {
	Territories   []Territory
	Distributors  []Distributor
	Products      []Product
	SalesReps     []SalesRep
	Operators     []Operator
	Accounts      []Account
	Opportunities []Opportunity
	Activities    []Activity
	Shipments     []Shipment
}
