package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/dataset"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRun_Synthetic(t *testing.T) {
	chart := filepath.Join(t.TempDir(), "history.svg")
	var stdout bytes.Buffer

	err := run([]string{
		"-synthetic",
		"-epochs", "1",
		"-train-limit", "50",
		"-eval-limit", "20",
		"-show", "1",
		"-chart", chart,
	}, &stdout, quietLogger())
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Layer Name = layer_0")
	assert.Contains(t, out, "Layer Name = softmax_2")
	assert.Contains(t, out, "Label: ")

	_, err = os.Stat(chart)
	assert.NoError(t, err)
}

// writeDataset saves five 3-feature samples of three classes into dir.
func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, dataset.Save(path, dataset.New([]float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		1, 0, 0,
		0, 1, 0,
	}, []uint8{0, 1, 2, 0, 1}, 3)))
	return path
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataset(t, dir)

	configPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"data: "+dataPath+"\nhidden: []\nepochs: 2\nbatch_size: 2\nlearning_rate: 0.5\nverbose: true\n",
	), 0o600))

	var logs bytes.Buffer
	err := run([]string{"-config", configPath}, io.Discard, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "data samples=5 features=3 classes=3 train=4 test=1")
	assert.Contains(t, logs.String(), "epoch=2 avg_loss=")
	assert.Contains(t, logs.String(), "sgd step=1 layer=layer_0")
}

// TestRun_FlagsCompleteConfig tests that a config file without a data
// source is completed by command-line flags before validation.
func TestRun_FlagsCompleteConfig(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeDataset(t, dir)
	configPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("epochs: 1\nhidden: []\n"), 0o600))

	var logs bytes.Buffer
	err := run([]string{"-config", configPath, "-data", dataPath}, io.Discard, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "epoch=1 avg_loss=")
}

func TestRun_Adam(t *testing.T) {
	dataPath := writeDataset(t, t.TempDir())

	var logs bytes.Buffer
	err := run([]string{"-data", dataPath, "-optimizer", "adam", "-lr", "0.01", "-epochs", "1", "-seed", "0"},
		io.Discard, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "optimizer=adam lr=0.01")

	assert.ErrorContains(t, run([]string{"-data", dataPath, "-optimizer", "rmsprop"}, io.Discard, quietLogger()),
		"rmsprop")
}

func TestRun_Errors(t *testing.T) {
	assert.ErrorContains(t, run(nil, io.Discard, quietLogger()), "no data source")
	assert.ErrorContains(t, run([]string{"-data", filepath.Join(t.TempDir(), "missing.bin")}, io.Discard, quietLogger()),
		"failed to open dataset")
	assert.Error(t, run([]string{"-no-such-flag"}, io.Discard, quietLogger()))
}
