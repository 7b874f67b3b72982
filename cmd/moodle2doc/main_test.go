package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/Todamie/moodle-xml-to-txt/internal/config"
	"github.com/Todamie/moodle-xml-to-txt/internal/extract"
)

const bank = `<?xml version="1.0" encoding="UTF-8"?>
<quiz>
  <question type="multichoice">
    <questiontext format="html"><text><![CDATA[<p>1 + 1?</p>]]></text></questiontext>
    <answer fraction="100"><text>2</text></answer>
    <answer fraction="0"><text>3</text></answer>
  </question>
</quiz>
`

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{fmt.Errorf("%w (1 of 3)", ErrPartial), ExitPartial},
		{fmt.Errorf("%w (3 of 3)", ErrAllFailed), ExitFailure},
		{ErrNoInput, ExitFailure},
		{fmt.Errorf("%w: labels", ErrUsage), ExitFailure},
		{errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteInspection(t *testing.T) {
	in := inspection{
		Title: "bank",
		Mode:  "text",
		Questions: []extract.QuestionRecord{{
			Text: "1 + 1?",
			Answers: []extract.AnswerRecord{
				{Correct: true, Fraction: 100, Text: "2"},
			},
		}},
	}

	var js bytes.Buffer
	require.NoError(t, writeInspection(&js, "json", in))
	var fromJSON inspection
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))
	assert.Equal(t, in.Questions[0].Text, fromJSON.Questions[0].Text)

	var ym bytes.Buffer
	require.NoError(t, writeInspection(&ym, "yaml", in))
	assert.Contains(t, ym.String(), "questions:")
	var fromYAML inspection
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, "text", fromYAML.Mode)
	assert.True(t, fromYAML.Questions[0].Answers[0].Correct)
}

func TestRunConvertPartialBatch(t *testing.T) {
	config.SetDefaults(viper.GetViper())
	dir := t.TempDir()
	good := filepath.Join(dir, "good.xml")
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(good, []byte(bank), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("<quiz>"), 0o644))

	var out, errOut bytes.Buffer
	convertCmd.SetOut(&out)
	convertCmd.SetErr(&errOut)
	t.Cleanup(func() {
		convertCmd.SetOut(nil)
		convertCmd.SetErr(nil)
	})

	err := runConvert(convertCmd, []string{good, bad})
	require.Error(t, err)
	assert.Equal(t, ExitPartial, exitCodeFor(err))
	assert.Contains(t, out.String(), "Batch summary: 1 converted, 1 failed (total: 2)")

	data, err := os.ReadFile(filepath.Join(dir, "good.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1 + 1?\nA) 2\nB) 3\nОтветы: A\n\n", string(data))

	err = runConvert(convertCmd, []string{bad})
	assert.ErrorIs(t, err, ErrAllFailed)
	assert.Equal(t, ExitFailure, exitCodeFor(err))
}
