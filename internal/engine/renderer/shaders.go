package renderer

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;

out vec3 vWorldPos;

void main() {
	vWorldPos = aPos;
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

// Flat shading: the face normal comes from screen-space derivatives of the
// world position, so every triangle is lit uniformly.
const meshFragmentShader = `
#version 410 core

in vec3 vWorldPos;

uniform vec3 uColor;
uniform float uOpacity;
uniform vec3 uAmbient;
uniform vec3 uLightDir;
uniform vec3 uLightColor;
uniform vec3 uEye;

out vec4 FragColor;

const vec3 specularColor = vec3(0.0667);
const float shininess = 30.0;

void main() {
	vec3 n = normalize(cross(dFdx(vWorldPos), dFdy(vWorldPos)));
	vec3 v = normalize(uEye - vWorldPos);
	if (dot(n, v) < 0.0) {
		n = -n;
	}

	vec3 l = normalize(uLightDir);
	float diff = max(dot(n, l), 0.0);
	vec3 h = normalize(l + v);
	float spec = diff > 0.0 ? pow(max(dot(n, h), 0.0), shininess) : 0.0;

	vec3 color = uColor * (uAmbient + uLightColor * diff) + specularColor * uLightColor * spec;
	FragColor = vec4(color, uOpacity);
}
`
