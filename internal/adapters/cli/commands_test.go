package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoanCalc(t *testing.T) {
	out, err := execute(t, "loan-calc", "--amount", "10000", "--rate", "0", "--months", "4", "--schedule")
	require.NoError(t, err)

	assert.Contains(t, out, "Monthly payment: $2,500.00")
	assert.Contains(t, out, "Total interest:   $0.00")
	assert.Contains(t, out, "Balance")
}

func TestLoanCalc_RejectsBadInput(t *testing.T) {
	_, err := execute(t, "loan-calc", "--amount", "10000", "--months", "0")
	assert.Error(t, err)

	_, err = execute(t, "loan-calc", "--amount", "-5")
	assert.Error(t, err)
}

func TestCatalogCommands(t *testing.T) {
	out, err := execute(t, "catalog", "cities")
	require.NoError(t, err)
	assert.Contains(t, out, "Berlin")
	assert.Contains(t, out, "Madrid")

	out, err = execute(t, "catalog", "trucks")
	require.NoError(t, err)
	assert.Contains(t, out, "Volker Lite T1")

	out, err = execute(t, "catalog", "licenses")
	require.NoError(t, err)
	assert.Contains(t, out, "$40,000.00")
}

func TestConfigInit_Stdout(t *testing.T) {
	out, err := execute(t, "config", "init", "--output", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "player_name: Driver 001")
	assert.Contains(t, out, "job_pool_size: 10")
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://tl:xxxxx@db:5432/trucklife", maskPassword("postgres://tl:secret@db:5432/trucklife"))
	assert.Equal(t, "trucklife.db", maskPassword("trucklife.db"))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]", progressBar(0.5, 10))
	assert.Equal(t, "[██████████]", progressBar(3, 10))
	assert.Equal(t, "[░░░░░░░░░░]", progressBar(-1, 10))
}
