package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRunArgs(t *testing.T) {
	tests := []struct {
		name     string
		spec     RunSpec
		expected []string
	}{
		{
			name:     "image only",
			spec:     RunSpec{Image: "nginx"},
			expected: []string{"run", "-d", "nginx"},
		},
		{
			name:     "ports and env",
			spec:     RunSpec{Image: "nginx", Ports: "8080:80", EnvVars: []string{"A=1", "B=2"}},
			expected: []string{"run", "-d", "-p", "8080:80", "-e", "A=1", "-e", "B=2", "nginx"},
		},
		{
			name:     "value with spaces stays one argument",
			spec:     RunSpec{Image: "alpine", EnvVars: []string{"GREETING=hello world"}},
			expected: []string{"run", "-d", "-e", "GREETING=hello world", "alpine"},
		},
		{
			name:     "whitespace ports ignored",
			spec:     RunSpec{Image: "redis", Ports: "  "},
			expected: []string{"run", "-d", "redis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildRunArgs(tt.spec))
		})
	}
}

func TestParseEnvList(t *testing.T) {
	assert.Nil(t, ParseEnvList(""))
	assert.Nil(t, ParseEnvList("   "))
	assert.Equal(t, []string{"A=1", "B=2"}, ParseEnvList("A=1, B=2"))
	assert.Equal(t, []string{"A=1"}, ParseEnvList(",A=1,, ,"))
}

func TestBuildComposeArgs(t *testing.T) {
	name, args := BuildComposeArgs([]string{"docker-compose"}, "/tmp/docker-compose.yml")
	assert.Equal(t, "docker-compose", name)
	assert.Equal(t, []string{"-f", "/tmp/docker-compose.yml", "up", "-d"}, args)

	name, args = BuildComposeArgs([]string{"docker", "compose"}, "/x.yml")
	assert.Equal(t, "docker", name)
	assert.Equal(t, []string{"compose", "-f", "/x.yml", "up", "-d"}, args)
}
