package schedjobs

import (
	"context"
	"testing"
)

func TestDeleteCronJobRemovesByID(t *testing.T) {
	s := NewScheduler(context.Background())
	s.AddCronJob(NewNightlyCronJob("purge-export-log", 3, 30))
	s.AddCronJob(NewEveryMinEmptyCronJob("tick"))

	var deleted string
	s.OnCronJobDeleted = func(job *CronJob) { deleted = job.ID }

	s.DeleteCronJob("tick")

	jobs := s.GetCronJobs()
	if len(jobs) != 1 || jobs[0].ID != "purge-export-log" {
		t.Fatalf("jobs after delete = %v", jobs)
	}
	if deleted != "tick" {
		t.Errorf("OnCronJobDeleted saw %q, want tick", deleted)
	}

	// unknown ids are a no-op
	s.DeleteCronJob("nope")
	if got := len(s.GetCronJobs()); got != 1 {
		t.Errorf("jobs after deleting unknown id = %d, want 1", got)
	}
}
