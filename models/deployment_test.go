package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeployment(t *testing.T) {
	tests := []struct {
		in   string
		want Deployment
	}{
		{in: "debug", want: DeploymentDebug},
		{in: "Development", want: DeploymentDebug},
		{in: " docker ", want: DeploymentDocker},
		{in: "SYSTEM", want: DeploymentSystem},
		{in: "user", want: DeploymentUser},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDeployment(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDeployment("cloud")
	assert.ErrorIs(t, err, ErrUnknownDeployment)
}

func TestDeployment_String(t *testing.T) {
	assert.Equal(t, "debug", DeploymentDebug.String())
	assert.Equal(t, "docker", DeploymentDocker.String())
	assert.Equal(t, "system", DeploymentSystem.String())
	assert.Equal(t, "user", DeploymentUser.String())
	assert.Equal(t, "Deployment(9)", Deployment(9).String())
}

func TestDeployment_UsesDotenv(t *testing.T) {
	assert.True(t, DeploymentDebug.UsesDotenv())
	assert.True(t, DeploymentDocker.UsesDotenv())
	assert.False(t, DeploymentSystem.UsesDotenv())
	assert.False(t, DeploymentUser.UsesDotenv())
}
