package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MohithS04/Food-service-sales/internal/model"
)

const dateLayout = "2006-01-02"

func boolCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func dateCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// ExtractRows renders a table's rows as strings in the template's column
// order. Nullable fields render as empty cells.
func ExtractRows(table string, ds *model.Dataset) ([][]string, error) {
	switch table {
	case "territories":
		rows := make([][]string, len(ds.Territories))
		for i, t := range ds.Territories {
			rows[i] = []string{t.TerritoryID, t.TerritoryName, string(t.Region), t.State, t.Timezone}
		}
		return rows, nil
	case "distributors":
		rows := make([][]string, len(ds.Distributors))
		for i, d := range ds.Distributors {
			rows[i] = []string{
				d.DistributorID, d.DistributorName, string(d.DistributorType),
				d.HQState, d.TerritoryID, strconv.Itoa(d.FoundedYear), boolCell(d.Active),
			}
		}
		return rows, nil
	case "products":
		rows := make([][]string, len(ds.Products))
		for i, p := range ds.Products {
			rows[i] = []string{
				p.ProductID, p.ProductName, p.Category, p.Subcategory, p.Brand,
				p.UnitOfSale, p.ListPrice.StringFixed(2), p.CostPerUnit.StringFixed(2),
				dateCell(p.LaunchDate), boolCell(p.Active),
			}
		}
		return rows, nil
	case "sales_reps":
		rows := make([][]string, len(ds.SalesReps))
		for i, r := range ds.SalesReps {
			rows[i] = []string{
				r.RepID, r.RepName, r.Email, string(r.RepTier), string(r.Region),
				r.TerritoryID, r.ManagerID, dateCell(r.HireDate),
				r.QuotaAnnual.StringFixed(2), boolCell(r.Active),
			}
		}
		return rows, nil
	case "operators":
		rows := make([][]string, len(ds.Operators))
		for i, o := range ds.Operators {
			rows[i] = []string{
				o.OperatorID, o.OperatorName, o.OperatorType, o.CuisineType,
				o.City, o.State, o.TerritoryID, string(o.RevenueTier),
				o.PrimaryDistributorID, dateCell(o.OpenedDate), boolCell(o.Active),
			}
		}
		return rows, nil
	case "sf_accounts":
		rows := make([][]string, len(ds.Accounts))
		for i, a := range ds.Accounts {
			rows[i] = []string{
				a.AccountID, a.OperatorID, a.AccountName, string(a.AccountType),
				a.OwnerRepID, a.TerritoryID, dateCell(a.CreatedDate),
				dateCell(a.LastActivityDate), string(a.Status),
			}
		}
		return rows, nil
	case "sf_opportunities":
		rows := make([][]string, len(ds.Opportunities))
		for i, o := range ds.Opportunities {
			closeDate := ""
			if o.HasCloseDate {
				closeDate = dateCell(o.CloseDate)
			}
			rows[i] = []string{
				o.OpportunityID, o.AccountID, o.OwnerRepID, o.Name, string(o.Stage),
				o.Amount.StringFixed(2), strconv.Itoa(o.Probability),
				dateCell(o.CreatedDate), closeDate, o.LeadSource,
				o.LossReason, o.Competitor, o.NextSteps, o.ProductFocus,
			}
		}
		return rows, nil
	case "sf_activities":
		rows := make([][]string, len(ds.Activities))
		for i, a := range ds.Activities {
			rows[i] = []string{
				a.ActivityID, a.AccountID, a.OpportunityID, a.RepID,
				string(a.ActivityType), dateCell(a.ActivityDate),
				strconv.Itoa(a.DurationMin), a.Subject, a.Outcome,
			}
		}
		return rows, nil
	case "shipments":
		rows := make([][]string, len(ds.Shipments))
		for i, s := range ds.Shipments {
			rows[i] = []string{
				strconv.FormatInt(s.ShipmentID, 10),
				dateCell(s.ShipmentDate), dateCell(s.WeekEnding),
				s.DistributorID, s.OperatorID, s.ProductID,
				strconv.Itoa(s.Quantity),
				s.GrossRevenue.StringFixed(2), s.Discounts.StringFixed(2),
				s.Returns.StringFixed(2), s.NetRevenue.StringFixed(2),
				s.COGS.StringFixed(2),
			}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unknown table %q", table)
}

// convertValue turns a CSV cell into the driver value for its column type.
// Empty cells on nullable columns load as NULL. SQLite keeps dates as
// ISO-8601 text so strftime works directly; Postgres gets time.Time.
func convertValue(col ColumnDef, s string, dialect Dialect) (interface{}, error) {
	if s == "" {
		if col.Nullable {
			return nil, nil
		}
		if col.Type == "TEXT" {
			return "", nil
		}
		return nil, fmt.Errorf("column %s: empty value for non-nullable %s", col.Name, col.Type)
	}
	switch {
	case col.Type == "INTEGER" || col.Type == "BIGINT":
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		return v, nil
	case strings.HasPrefix(col.Type, "NUMERIC"):
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		return v, nil
	case col.Type == "DATE":
		v, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		if dialect == DialectSQLite {
			return s, nil
		}
		return v, nil
	default:
		return s, nil
	}
}
