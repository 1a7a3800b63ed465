package filing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePrefillIsByteIdentical(t *testing.T) {
	first, err := json.Marshal(GeneratePrefill("ABCDE1234F", "2024-25"))
	require.NoError(t, err)
	second, err := json.Marshal(GeneratePrefill("ABCDE1234F", "2024-25"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGeneratePrefillEchoesPANOnly(t *testing.T) {
	a := GeneratePrefill("ABCDE1234F", "2024-25")
	b := GeneratePrefill("ZZZZZ9999Z", "2023-24")

	assert.Equal(t, "ABCDE1234F", a.PersonalInfo.PAN)
	assert.Equal(t, "ZZZZZ9999Z", b.PersonalInfo.PAN)

	b.PersonalInfo.PAN = a.PersonalInfo.PAN
	assert.Equal(t, a, b, "everything except the PAN is constant")
}

func TestGeneratePrefillShape(t *testing.T) {
	raw, err := json.Marshal(GeneratePrefill("ABCDE1234F", "2024-25"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.ElementsMatch(t, []string{
		"personalInfo", "salary", "interestIncome", "tds", "advanceTax",
		"ais", "tis", "section80C", "section80D", "houseProperty",
	}, keys(doc))

	salary := doc["salary"].(map[string]any)
	assert.EqualValues(t, 1500000, salary["totalGrossSalary"])
	assert.EqualValues(t, 1397500, salary["netSalary"])
	employer := salary["employers"].([]any)[0].(map[string]any)
	assert.Equal(t, "MUMB12345D", employer["tan"])

	assert.EqualValues(t, 129500, doc["tds"].(map[string]any)["totalTDS"])
	assert.EqualValues(t, 175000, doc["section80C"].(map[string]any)["total"])
	assert.EqualValues(t, 75000, doc["section80D"].(map[string]any)["total"])
	assert.Equal(t, false, doc["ais"].(map[string]any)["dividendInformation"])

	address := doc["personalInfo"].(map[string]any)["address"].(map[string]any)
	assert.Equal(t, "400001", address["pincode"])
	assert.Equal(t, "HDFC0001234", doc["houseProperty"].(map[string]any)["lenderPan"])
}

func TestGeneratePrefillTotalsAreConsistent(t *testing.T) {
	p := GeneratePrefill("ABCDE1234F", "2024-25")

	assert.Equal(t, p.TDS.Salary[0].TDSDeducted+p.TDS.Others[0].TDSDeducted, p.TDS.TotalTDS)
	assert.Equal(t, p.InterestIncome.SavingsAccountInterest+p.InterestIncome.FDInterest, p.InterestIncome.TotalInterest)
	assert.Equal(t, p.Section80C.PPF+p.Section80C.ELSS+p.Section80C.LifeInsurance, p.Section80C.Total)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
