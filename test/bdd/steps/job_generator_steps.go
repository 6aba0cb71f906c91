package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/job"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/world"
)

type jobGeneratorContext struct {
	catalog   *world.Catalog
	generator *job.Generator
	level     int
	jobs      []job.Job
}

func (jc *jobGeneratorContext) reset() {
	jc.catalog = world.DefaultCatalog()
	jc.generator = nil
	jc.level = 1
	jc.jobs = nil
}

// Given steps

func (jc *jobGeneratorContext) aJobGeneratorSeededWith(seed int64) error {
	jc.generator = job.NewGenerator(jc.catalog, shared.NewSeededRandom(seed), shared.NewMockClock(epoch))
	return nil
}

// When steps

func (jc *jobGeneratorContext) iGenerateJobsForALevelDriver(n, level int) error {
	if jc.generator == nil {
		return fmt.Errorf("no job generator available")
	}
	jc.level = level
	jc.jobs = jc.generator.GenerateBatch(n, level)
	return nil
}

// Then steps

func (jc *jobGeneratorContext) iShouldGetJobs(expected int) error {
	if len(jc.jobs) != expected {
		return fmt.Errorf("expected %d jobs, got %d", expected, len(jc.jobs))
	}
	return nil
}

func (jc *jobGeneratorContext) everyJobShouldConnectTwoDifferentCities() error {
	for _, j := range jc.jobs {
		if j.From == j.To {
			return fmt.Errorf("job %s starts and ends in %s", j.ID, j.From)
		}
		if _, ok := jc.catalog.FindCity(j.From); !ok {
			return fmt.Errorf("job %s starts in unknown city %s", j.ID, j.From)
		}
		if _, ok := jc.catalog.FindCity(j.To); !ok {
			return fmt.Errorf("job %s ends in unknown city %s", j.ID, j.To)
		}
	}
	return nil
}

func (jc *jobGeneratorContext) everyJobWeightShouldBeBetween(min, max int) error {
	for _, j := range jc.jobs {
		if j.Weight < min || j.Weight > max {
			return fmt.Errorf("job %s weighs %dkg, outside [%d, %d]", j.ID, j.Weight, min, max)
		}
	}
	return nil
}

func (jc *jobGeneratorContext) everyJobDistanceShouldMatchTheMap() error {
	for _, j := range jc.jobs {
		from, _ := jc.catalog.FindCity(j.From)
		to, _ := jc.catalog.FindCity(j.To)
		if expected := jc.catalog.Distance(from, to); math.Abs(j.Distance-expected) > 1e-9 {
			return fmt.Errorf("job %s distance %.2f, expected %.2f", j.ID, j.Distance, expected)
		}
	}
	return nil
}

func (jc *jobGeneratorContext) everyJobPayoutShouldFollowTheFreightRate() error {
	for _, j := range jc.jobs {
		expected := int(math.Round(j.Distance * job.PayPerKM * (1 + float64(jc.level)*job.LevelBonusPerLevel) * j.Urgency.Multiplier()))
		if j.Payout != expected {
			return fmt.Errorf("job %s pays %d, expected %d", j.ID, j.Payout, expected)
		}
	}
	return nil
}

func (jc *jobGeneratorContext) everyJobUrgencyShouldBeOneOf(list string) error {
	allowed := strings.Split(list, ",")
	for _, j := range jc.jobs {
		found := false
		for _, u := range allowed {
			if strings.TrimSpace(u) == string(j.Urgency) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("job %s has urgency %q, allowed %s", j.ID, j.Urgency, list)
		}
	}
	return nil
}

func (jc *jobGeneratorContext) everyJobShouldRequireAValidLicense() error {
	for _, j := range jc.jobs {
		if !j.RequiredLicense.IsValid() {
			return fmt.Errorf("job %s requires unknown license %q", j.ID, j.RequiredLicense)
		}
	}
	return nil
}

func (jc *jobGeneratorContext) jobIDsShouldBeUnique() error {
	seen := make(map[string]bool, len(jc.jobs))
	for _, j := range jc.jobs {
		if seen[j.ID] {
			return fmt.Errorf("duplicate job id %s", j.ID)
		}
		seen[j.ID] = true
	}
	return nil
}

func InitializeJobGeneratorScenario(ctx *godog.ScenarioContext) {
	jc := &jobGeneratorContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		jc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a job generator seeded with (\d+)$`, jc.aJobGeneratorSeededWith)

	// When steps
	ctx.Step(`^I generate (\d+) jobs for a level (\d+) driver$`, jc.iGenerateJobsForALevelDriver)

	// Then steps
	ctx.Step(`^I should get (\d+) jobs$`, jc.iShouldGetJobs)
	ctx.Step(`^every job should connect two different cities$`, jc.everyJobShouldConnectTwoDifferentCities)
	ctx.Step(`^every job weight should be between (\d+) and (\d+) kg$`, jc.everyJobWeightShouldBeBetween)
	ctx.Step(`^every job distance should match the map$`, jc.everyJobDistanceShouldMatchTheMap)
	ctx.Step(`^every job payout should follow the freight rate$`, jc.everyJobPayoutShouldFollowTheFreightRate)
	ctx.Step(`^every job urgency should be one of "([^"]*)"$`, jc.everyJobUrgencyShouldBeOneOf)
	ctx.Step(`^every job should require a valid license$`, jc.everyJobShouldRequireAValidLicense)
	ctx.Step(`^job ids should be unique$`, jc.jobIDsShouldBeUnique)
}
