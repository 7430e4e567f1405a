package compliance

import (
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/validator"
)

// Candidate source keys per canonical field. Upstream exports disagree
// on naming; the adapter resolves each field once per dataset instead
// of guessing per record. New upstream shapes are added here without
// touching rule logic.
var employeeFieldCandidates = map[string][]string{
	"employeeId":           {"employeeId", "id", "empId"},
	"name":                 {"name", "employeeName", "fullName"},
	"basicSalary":          {"basicSalary", "basic", "salary"},
	"pan":                  {"pan", "PAN", "panNumber"},
	"state":                {"state", "workState"},
	"jobRole":              {"jobRole", "role", "designation"},
	"taxRegime":            {"taxRegime", "regime"},
	"pfApplicable":         {"pfApplicable", "pfEnabled"},
	"esiApplicable":        {"esiApplicable", "esiEnabled"},
	"esiExitMonth":         {"esiExitMonth"},
	"joinDate":             {"joinDate", "dateOfJoining", "doj"},
	"exitDate":             {"exitDate", "lastWorkingDay", "doe"},
	"tdsDeclarationAmount": {"tdsDeclarationAmount", "declarationAmount"},
	"tdsProofAmount":       {"tdsProofAmount", "proofAmount"},
}

var payrollFieldCandidates = map[string][]string{
	"employeeId":    {"employeeId", "empId", "id"},
	"period":        {"period", "month"},
	"paymentDate":   {"paymentDate", "processedAt", "createdAt"},
	"basic":         {"basic", "basicSalary"},
	"da":            {"da", "dearnessAllowance"},
	"pfWage":        {"pfWage", "pfWages"},
	"gross":         {"gross", "monthlyGross", "totalEarnings"},
	"allowances":    {"allowances", "specialAllowance", "otherAllowances"},
	"reimbursement": {"reimbursement", "reimbursements"},
	"deductions":    {"deductions", "totalDeductions"},
	"net":           {"net", "netSalary"},
	"pf":            {"pf", "epf", "epfEmployee", "pfEmployee", "pfDeduction"},
	"eps":           {"eps", "pfPension"},
	"employerEpf":   {"employerEpf", "epfEmployer", "employerPf"},
	"employerEps":   {"employerEps", "employerPension"},
	"esi":           {"esi", "esiEmployee", "esiEmployeeContribution", "esiDeduction"},
	"esiEmployer":   {"esiEmployer", "esiEmployerContribution", "esiEmployerShare"},
	"pt":            {"pt", "ptDeduction"},
	"tds":           {"tds", "tdsDeduction"},
	"tdsExpected":   {"tdsExpected", "expectedTds"},
	"state":         {"state", "workState"},
	"taxRegime":     {"taxRegime", "regime"},
}

// Keys under which a payroll run document nests its line items.
var payrollItemsKeys = []string{"payrollData", "records", "items"}

// schemaAdapter maps canonical field names to the source keys actually
// present in a dataset. Resolved once at normalization time.
type schemaAdapter struct {
	resolved map[string]string
}

// resolveAdapter inspects up to the first few sample records and binds
// each canonical field to the first candidate key that appears. Fields
// absent from every sample fall back to the primary candidate so later
// records that do carry them still resolve.
func resolveAdapter(candidates map[string][]string, samples []map[string]any) *schemaAdapter {
	const sampleLimit = 10
	if len(samples) > sampleLimit {
		samples = samples[:sampleLimit]
	}

	resolved := make(map[string]string, len(candidates))
	for field, keys := range candidates {
		resolved[field] = keys[0]
		for _, key := range keys {
			found := false
			for _, sample := range samples {
				if _, ok := sample[key]; ok {
					found = true
					break
				}
			}
			if found {
				resolved[field] = key
				break
			}
		}
	}
	return &schemaAdapter{resolved: resolved}
}

// get reads a canonical field, falling back through all candidates when
// the resolved key is absent from this particular record.
func (a *schemaAdapter) get(rec map[string]any, field string, candidates map[string][]string) any {
	if v, ok := rec[a.resolved[field]]; ok && v != nil {
		return v
	}
	return pick(rec, candidates[field]...)
}

// normalizer converts raw employee and payroll documents into the
// canonical structs the rule evaluators consume.
type normalizer struct {
	empAdapter *schemaAdapter
	payAdapter *schemaAdapter
}

func newNormalizer(empSamples []employee.RawRecord, paySamples []payroll.RawRecord) *normalizer {
	empMaps := make([]map[string]any, 0, len(empSamples))
	for _, r := range empSamples {
		empMaps = append(empMaps, r)
	}
	payMaps := flattenPayroll(paySamples)

	return &normalizer{
		empAdapter: resolveAdapter(employeeFieldCandidates, empMaps),
		payAdapter: resolveAdapter(payrollFieldCandidates, payMaps),
	}
}

// Employee normalizes one raw employee document. ok is false when the
// record carries no usable employee identifier; such records are
// excluded from rule evaluation, not treated as errors.
func (n *normalizer) Employee(raw employee.RawRecord) (employee.Employee, bool) {
	get := func(field string) any { return n.empAdapter.get(raw, field, employeeFieldCandidates) }

	id := toString(get("employeeId"))
	if validator.IsEmpty(id) {
		slog.Debug("Excluding employee record without identifier")
		return employee.Employee{}, false
	}

	return employee.Employee{
		EmployeeID:           id,
		Name:                 toString(get("name")),
		BasicSalary:          toDecimal(get("basicSalary")),
		PAN:                  toString(get("pan")),
		State:                toString(get("state")),
		JobRole:              toString(get("jobRole")),
		TaxRegime:            toString(get("taxRegime")),
		PFApplicable:         toBool(get("pfApplicable")),
		ESIApplicable:        toBool(get("esiApplicable")),
		ESIExitMonth:         toString(get("esiExitMonth")),
		JoinDate:             toTime(get("joinDate")),
		ExitDate:             toTime(get("exitDate")),
		TDSDeclarationAmount: toDecimal(get("tdsDeclarationAmount")),
		TDSProofAmount:       toDecimal(get("tdsProofAmount")),
	}, true
}

// PayrollRecord normalizes one flat payroll line item.
func (n *normalizer) PayrollRecord(raw map[string]any) (payroll.Record, bool) {
	get := func(field string) any { return n.payAdapter.get(raw, field, payrollFieldCandidates) }

	id := toString(get("employeeId"))
	if validator.IsEmpty(id) {
		slog.Debug("Excluding payroll record without employee identifier")
		return payroll.Record{}, false
	}

	rec := payroll.Record{
		EmployeeID:    id,
		Period:        toString(get("period")),
		State:         toString(get("state")),
		TaxRegime:     toString(get("taxRegime")),
		PaymentDate:   toTime(get("paymentDate")),
		Basic:         toDecimal(get("basic")),
		DA:            toDecimal(get("da")),
		PFWage:        toDecimal(get("pfWage")),
		Gross:         toDecimal(get("gross")),
		Allowances:    toDecimal(get("allowances")),
		Reimbursement: toDecimal(get("reimbursement")),
		Deductions:    toDecimal(get("deductions")),
		Net:           toDecimal(get("net")),
		PF:            toDecimal(get("pf")),
		EPS:           toDecimal(get("eps")),
		EmployerEPF:   toDecimal(get("employerEpf")),
		EmployerEPS:   toDecimal(get("employerEps")),
		ESI:           toDecimal(get("esi")),
		ESIEmployer:   toDecimal(get("esiEmployer")),
		PT:            toDecimal(get("pt")),
		TDS:           toDecimal(get("tds")),
		TDSExpected:   toDecimal(get("tdsExpected")),
	}

	// Gross falls back to basic+allowances when the record has no
	// explicit gross field.
	if rec.Gross.IsZero() {
		rec.Gross = rec.Basic.Add(rec.Allowances)
	}

	return rec, true
}

// flattenPayroll unwraps run documents into flat line items. A document
// is either already flat or nests an array under one of the known keys.
func flattenPayroll(raws []payroll.RawRecord) []map[string]any {
	flat := make([]map[string]any, 0, len(raws))
	for _, raw := range raws {
		nested := false
		for _, key := range payrollItemsKeys {
			items, ok := raw[key].([]any)
			if !ok {
				continue
			}
			nested = true
			for _, item := range items {
				if rec, ok := item.(map[string]any); ok {
					flat = append(flat, rec)
				}
			}
			break
		}
		if !nested {
			flat = append(flat, raw)
		}
	}
	return flat
}

// Histories groups normalized payroll records per employee, ascending
// by payment date with ties kept in record order.
func (n *normalizer) Histories(raws []payroll.RawRecord) map[string]payroll.History {
	histories := make(map[string]payroll.History)
	for _, raw := range flattenPayroll(raws) {
		rec, ok := n.PayrollRecord(raw)
		if !ok {
			continue
		}
		histories[rec.EmployeeID] = append(histories[rec.EmployeeID], rec)
	}

	for id, history := range histories {
		sort.SliceStable(history, func(i, j int) bool {
			return paymentEpoch(history[i]) < paymentEpoch(history[j])
		})
		histories[id] = history
	}
	return histories
}

func paymentEpoch(rec payroll.Record) int64 {
	if rec.PaymentDate == nil {
		return 0
	}
	return rec.PaymentDate.Unix()
}
