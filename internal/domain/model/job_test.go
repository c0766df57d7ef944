package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus_Terminal(t *testing.T) {
	assert.False(t, JobStatusPending.Terminal())
	assert.False(t, JobStatusRunning.Terminal())
	assert.True(t, JobStatusSuccess.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
	assert.True(t, JobStatusCancelled.Terminal())
}

func TestJobType_UnmarshalText(t *testing.T) {
	var jt JobType
	require.NoError(t, jt.UnmarshalText([]byte(" Calibration ")))
	assert.Equal(t, JobTypeCalibration, jt)

	require.NoError(t, jt.UnmarshalText([]byte("superdark_creation")))
	assert.Equal(t, JobTypeSuperdarkCreation, jt)

	assert.Error(t, jt.UnmarshalText([]byte("transcoding")))
}

func TestFrameTypes_CoversAll(t *testing.T) {
	fts := FrameTypes()
	assert.Len(t, fts, 4)
	for _, ft := range fts {
		assert.True(t, ft.Valid())
	}
}

func TestJobRecord_CheckInvariants(t *testing.T) {
	errText := "stacking failed"

	cases := []struct {
		name    string
		rec     JobRecord
		wantErr bool
	}{
		{
			name: "success with result",
			rec: JobRecord{
				Status: JobStatusSuccess,
				Result: json.RawMessage(`{"outputFiles": []}`),
			},
		},
		{
			name:    "success without result",
			rec:     JobRecord{Status: JobStatusSuccess},
			wantErr: true,
		},
		{
			name:    "success with null result",
			rec:     JobRecord{Status: JobStatusSuccess, Result: json.RawMessage(`null`)},
			wantErr: true,
		},
		{
			name: "running with result",
			rec: JobRecord{
				Status: JobStatusRunning,
				Result: json.RawMessage(`{}`),
			},
			wantErr: true,
		},
		{
			name: "failed with error",
			rec:  JobRecord{Status: JobStatusFailed, Error: &errText},
		},
		{
			name:    "failed without error",
			rec:     JobRecord{Status: JobStatusFailed},
			wantErr: true,
		},
		{
			name: "cancelled without result or error",
			rec:  JobRecord{Status: JobStatusCancelled},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.CheckInvariants()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalibrationRequest_Validate(t *testing.T) {
	valid := CalibrationRequest{
		InputFrames: []string{"a.fits"},
		ProjectID:   "proj-1",
		UserID:      "user-1",
	}
	require.NoError(t, valid.Validate())

	// Frames plus a master reference is a complete submission on its own;
	// project and user identifiers are the worker's to require.
	minimal := CalibrationRequest{
		InputFrames: []string{"light1", "light2"},
		MasterBias:  "bias1",
	}
	require.NoError(t, minimal.Validate())

	noFrames := valid
	noFrames.InputFrames = nil
	assert.Error(t, noFrames.Validate())

	blankFrame := valid
	blankFrame.InputFrames = []string{"a.fits", "  "}
	assert.Error(t, blankFrame.Validate())
}

func TestSuperdarkRequest_Validate(t *testing.T) {
	require.NoError(t, (&SuperdarkRequest{DarkFrames: []string{"d1.fits"}}).Validate())

	assert.Error(t, (&SuperdarkRequest{}).Validate())
	assert.Error(t, (&SuperdarkRequest{DarkFrames: []string{"d1.fits", " "}}).Validate())
}

func TestCalibrationRequest_Normalize(t *testing.T) {
	req := CalibrationRequest{
		InputFrames: []string{"a.fits", "b.fits"},
		MasterBias:  "bias-1",
		MasterDark:  "dark-1",
		MasterFlat:  "flat-1",
		Settings:    json.RawMessage(`{"sigmaClip": 3}`),
		ProjectID:   "proj-1",
		UserID:      "user-1",
	}

	w := req.Normalize()
	assert.Equal(t, JobTypeCalibration, w.JobType)
	assert.Equal(t, req.InputFrames, w.InputFiles)
	assert.Equal(t, "bias-1", w.MasterBiasID)
	assert.Equal(t, "dark-1", w.MasterDarkID)
	assert.Equal(t, "flat-1", w.MasterFlatID)
	assert.Equal(t, "proj-1", w.ProjectID)

	// Dashboard field names map onto the worker's snake_case schema.
	raw, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"input_files"`)
	assert.Contains(t, string(raw), `"master_bias_id"`)
	assert.NotContains(t, string(raw), `"inputFrames"`)
}

func TestSuperdarkRequest_Normalize(t *testing.T) {
	req := SuperdarkRequest{
		DarkFrames: []string{"d1.fits", "d2.fits"},
		ProjectID:  "proj-1",
		UserID:     "user-1",
	}

	w := req.Normalize()
	assert.Equal(t, JobTypeSuperdarkCreation, w.JobType)
	assert.Equal(t, req.DarkFrames, w.InputFiles)
	assert.Empty(t, w.MasterBiasID)
}

func TestLatestResultQuery_Validate(t *testing.T) {
	valid := LatestResultQuery{ProjectID: "proj-1", FrameType: FrameTypeLight}
	require.NoError(t, valid.Validate())

	assert.Error(t, (&LatestResultQuery{FrameType: FrameTypeLight}).Validate())
	assert.Error(t, (&LatestResultQuery{ProjectID: "proj-1", FrameType: "ultraviolet"}).Validate())
	assert.Error(t, (&LatestResultQuery{ProjectID: "proj-1"}).Validate())
}

func TestLatestResultFromRecord(t *testing.T) {
	errText := "stacking failed"
	rec := &JobRecord{
		JobID:    "wk-1",
		Status:   JobStatusSuccess,
		Progress: 100,
		Result:   json.RawMessage(`{"outputFiles": []}`),
		Warnings: json.RawMessage(`["low frame count"]`),
		Error:    &errText,
	}

	resp := LatestResultFromRecord(rec)
	assert.Equal(t, "wk-1", resp.JobID)
	assert.Equal(t, JobStatusSuccess, resp.Status)
	assert.InDelta(t, 100.0, resp.Progress, 0.0001)
	assert.JSONEq(t, `{"outputFiles": []}`, string(resp.Result))
	assert.JSONEq(t, `["low frame count"]`, string(resp.Warnings))
	assert.Equal(t, &errText, resp.Error)
}
