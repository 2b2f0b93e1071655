package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

func TestLoginResponse_Accepted(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "token and oid", body: `{"Token":"T1","Oid":"O1"}`, want: true},
		{name: "oid absent", body: `{"Token":"T1"}`, want: true},
		{name: "oid empty", body: `{"Token":"T1","Oid":""}`, want: true},
		{name: "oid null", body: `{"Token":"T1","Oid":null}`, want: false},
		{name: "token empty", body: `{"Token":"","Oid":"O1"}`, want: false},
		{name: "token absent", body: `{"Oid":"O1"}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp model.LoginResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))
			assert.Equal(t, tt.want, resp.Accepted())
		})
	}
}

func TestLoginResponse_DecodesFields(t *testing.T) {
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"Token":"T1","Oid":"O1","UserName":"ada"}`), &resp))

	assert.Equal(t, model.LoginResponse{Token: "T1", Oid: "O1", UserName: "ada"}, resp)
}

func TestLoginResponse_RejectsNonObject(t *testing.T) {
	var resp model.LoginResponse
	assert.Error(t, json.Unmarshal([]byte(`"{\"Token\":\"T1\"}"`), &resp))
}
