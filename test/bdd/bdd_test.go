package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/oseiasoliveira3390-bot/Truck-life/test/bdd/steps"
)

// TestFeatures runs every scenario. GODOG_TAGS narrows the run,
// e.g. GODOG_TAGS=@loans go test ./test/bdd.
func TestFeatures(t *testing.T) {
	layers := map[string]func(*godog.ScenarioContext){
		"features/domain": func(sc *godog.ScenarioContext) {
			steps.InitializeLoanMathScenario(sc)
			steps.InitializeJobGeneratorScenario(sc)
		},
		// driven through the mediator against an in-memory ledger
		"features/application": steps.InitializeCareerScenario,
	}

	for path, initializer := range layers {
		path, initializer := path, initializer
		t.Run(path, func(t *testing.T) {
			suite := godog.TestSuite{
				Name:                path,
				ScenarioInitializer: initializer,
				Options: &godog.Options{
					Format:   "pretty",
					Paths:    []string{path},
					Tags:     os.Getenv("GODOG_TAGS"),
					Strict:   true,
					TestingT: t,
				},
			}
			if suite.Run() != 0 {
				t.Fatalf("feature tests in %s failed", path)
			}
		})
	}
}
