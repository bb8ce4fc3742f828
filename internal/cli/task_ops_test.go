package cli

import (
	"strings"
	"testing"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

func TestDone_TogglesTask(t *testing.T) {
	mgr := withTaskManager(t)
	task, err := mgr.Add("walk the dog", core.AddOpts{})
	if err != nil {
		t.Fatal(err)
	}

	if err := doneCmd.RunE(doneCmd, []string{task.ID}); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	got, _ := mgr.Get(task.ID)
	if !got.Completed {
		t.Error("expected task to be completed")
	}

	if err := doneCmd.RunE(doneCmd, []string{task.ID}); err != nil {
		t.Fatalf("second done failed: %v", err)
	}
	got, _ = mgr.Get(task.ID)
	if got.Completed {
		t.Error("expected task to be reopened")
	}
}

func TestDone_UnknownID(t *testing.T) {
	withTaskManager(t)

	err := doneCmd.RunE(doneCmd, []string{"T-99999"})
	if err == nil {
		t.Fatal("expected error for unknown task")
	}
	if !strings.Contains(err.Error(), "task not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRm_DeletesTask(t *testing.T) {
	mgr := withTaskManager(t)
	task, err := mgr.Add("old chore", core.AddOpts{})
	if err != nil {
		t.Fatal(err)
	}

	if err := rmCmd.RunE(rmCmd, []string{task.ID}); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if _, ok := mgr.Get(task.ID); ok {
		t.Error("expected task to be deleted")
	}

	if err := rmCmd.RunE(rmCmd, []string{task.ID}); err == nil {
		t.Error("expected error deleting an already deleted task")
	}
}

func TestEdit_PatchesOnlyChangedFlags(t *testing.T) {
	mgr := withTaskManager(t)
	task, err := mgr.Add("draft plan", core.AddOpts{})
	if err != nil {
		t.Fatal(err)
	}

	if err := editCmd.Flags().Set("priority", "high"); err != nil {
		t.Fatal(err)
	}
	defer func() {
		editPriorityFlag = ""
		editClearDeadlineFlag = false
		editCmd.ResetFlags()
		registerEditFlags()
	}()

	if err := editCmd.RunE(editCmd, []string{task.ID}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got, _ := mgr.Get(task.ID)
	if got.Priority != models.PriorityHigh {
		t.Errorf("expected priority High, got %s", got.Priority)
	}
	if got.Title != "draft plan" {
		t.Errorf("title should be untouched, got %q", got.Title)
	}
}
