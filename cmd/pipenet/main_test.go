package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func TestRunDesign(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pipenet.yaml": "mode: design\nsupply: n9\nexit: n0\nlog_level: error\n" +
			"tables:\n  network: net.csv\n  fittings: fit.csv\n" +
			"design:\n  balancing_valves:\n    - {segment: b1, dp100: 0.03}\n    - {segment: b2, dp100: 0.03}\n",
		"net.csv": "segment,start,z_start,end,z_end,length,dn,flow,friction_loss\n" +
			"s0,n9,0,n1,0,10,32,0.9,\n" +
			"b1,n1,0,n2,2,20,25,0.5,\n" +
			"b2,n1,0,n2,2,10,20,0.4,\n" +
			"r0,n2,2,n0,0,10,32,0.9,\n",
		"fit.csv": "segment,fitting,type,zeta,zeta_inf,zeta_d,elr,kv\ns0,e1,elbow,0.75,,,,\n",
	})

	var out bytes.Buffer
	flags := &globalFlags{config: filepath.Join(dir, "pipenet.yaml")}
	require.NoError(t, runDesign(context.Background(), &out, flags, 3))

	text := out.String()
	assert.Contains(t, text, "critical path s0|b")
	assert.Contains(t, text, "balancing valve")
	assert.Contains(t, text, "s0|b1|r0")
	assert.Contains(t, text, "s0|b2|r0")
	assert.Contains(t, text, "elbow")
	assert.NotContains(t, text, "control valve")
}

func TestRunAnalyze(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pipenet.yaml": "mode: analysis\nsupply: a\nexit: b\nlog_level: error\ntables:\n  network: net.csv\n",
		"net.csv": "loop,segment,start,end,dn,length,zeta,a0,a1,a2,fixed_dp,flow\n" +
			"L,p25,a,b,25,10,,,,,,1\n" +
			"L,p32,a,b,32,10,,,,,,-1\n",
	})

	var out bytes.Buffer
	flags := &globalFlags{config: filepath.Join(dir, "pipenet.yaml"), metrics: true}
	require.NoError(t, runAnalyze(context.Background(), &out, flags))
	assert.True(t, strings.HasPrefix(out.String(), "converged after "))
	assert.Contains(t, out.String(), "p32")
}

func TestRunFitPump(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pipenet.yaml": "mode: analysis\nsupply: a\nexit: b\ntables:\n  network: net.csv\n",
		"points.csv":   "flow,dp\n0,0.4\n1,0.3\n2,0\n",
	})

	var out bytes.Buffer
	flags := &globalFlags{config: filepath.Join(dir, "pipenet.yaml")}
	require.NoError(t, runFitPump(&out, flags, filepath.Join(dir, "points.csv")))
	assert.Contains(t, out.String(), "a0 = 0.4 bar")
	assert.Contains(t, out.String(), "a2 = -0.1 bar/(L/s)^2")
}

func TestRunErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pipenet.yaml": "mode: design\nsupply: n9\nexit: n0\ntables:\n  network: missing.csv\n",
	})
	flags := &globalFlags{config: filepath.Join(dir, "pipenet.yaml")}
	assert.Error(t, runDesign(context.Background(), &bytes.Buffer{}, flags, 0))

	flags.logLevel = "loud"
	assert.Error(t, runDesign(context.Background(), &bytes.Buffer{}, flags, 0))
}
