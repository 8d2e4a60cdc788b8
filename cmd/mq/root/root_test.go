package root

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morningquest/internal/engine"
	"morningquest/internal/mission"
)

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--data-dir", dir,
	}, args...))
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRunLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No run in progress")

	out, err = runCLI(t, dir, "start")
	require.NoError(t, err)
	assert.Contains(t, out, "Good morning!")

	_, err = runCLI(t, dir, "start")
	require.ErrorIs(t, err, engine.ErrRunInProgress)

	_, err = runCLI(t, dir, "depart")
	var rej mission.DepartRejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, mission.PhaseWakeUp, rej.Phase)

	out, err = runCLI(t, dir, "do")
	require.NoError(t, err)
	assert.Contains(t, out, "Done in")

	out, err = runCLI(t, dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Run started")
	assert.Contains(t, out, "Breakfast")

	_, err = runCLI(t, dir, "abandon")
	require.Error(t, err)

	out, err = runCLI(t, dir, "abandon", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing was recorded")

	out, err = runCLI(t, dir, "logs")
	require.NoError(t, err)
	assert.Contains(t, out, "No mornings recorded yet.")
}

func TestTasksCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "tasks", "add", "Pack lunch", "-m", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Pack lunch")
	assert.Contains(t, out, "7 min")

	out, err = runCLI(t, dir, "tasks", "edit", "2", "Big breakfast", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Big breakfast")

	_, err = runCLI(t, dir, "tasks", "move", "2", "sideways")
	require.Error(t, err)

	out, err = runCLI(t, dir, "tasks", "rm", "3")
	require.NoError(t, err)
	assert.NotContains(t, out, "Brush teeth")

	out, err = runCLI(t, dir, "tasks", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Brush teeth")
	assert.NotContains(t, out, "Pack lunch")
}

func TestProfileSettings(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "name", "Mika")
	require.NoError(t, err)
	assert.Contains(t, out, "Mika")

	_, err = runCLI(t, dir, "depart-time", "7:5x")
	require.Error(t, err)

	out, err = runCLI(t, dir, "depart-time", "07:45")
	require.NoError(t, err)
	assert.Contains(t, out, "07:45")

	// Profiles are independent.
	out, err = runCLI(t, dir, "--profile", "child2", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Child 2")
	assert.NotContains(t, out, "Mika")

	_, err = runCLI(t, dir, "--profile", "nobody", "status")
	require.Error(t, err)

	out, err = runCLI(t, dir, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "child1")
	assert.Contains(t, out, "child2")
}

func TestStampsAndAckWithoutReward(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "stamps")
	require.NoError(t, err)
	assert.Contains(t, out, "None yet")

	_, err = runCLI(t, dir, "ack")
	require.ErrorIs(t, err, mission.ErrNoRewardPending)
}

func TestGenerateDisabled(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "generate", "school", "at", "8")
	var genErr engine.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, describeErr(err), "generator failed")
}

func TestDescribeErr(t *testing.T) {
	assert.Contains(t, describeErr(engine.ErrRewardPending), "mq ack")
	assert.Contains(t, describeErr(engine.ErrNoActiveRun), "mq start")
	assert.Contains(t, describeErr(mission.DepartRejectedError{Phase: mission.PhaseInProgress, PendingFlexible: 2}), "2 task(s)")
}
