package renderer

// MaxAnimatedBlocks is the size of the per-block frame count uniform array.
const MaxAnimatedBlocks = 64

// AnimationFPS is the playback rate of animated block textures.
const AnimationFPS = 8.0

const blockVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in float aBlockType;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec2 TexCoord;
flat out int BlockType;

void main() {
	gl_Position = projection * view * model * vec4(aPos, 1.0);
	TexCoord = aTexCoord;
	BlockType = int(aBlockType + 0.5);
}
`

const blockFragmentShader = `
#version 410 core

in vec2 TexCoord;
flat in int BlockType;

uniform sampler2DArray blockTexture;
uniform float time;
uniform int animFrames[64];
uniform int maxFrames;

out vec4 FragColor;

void main() {
	int frames = (BlockType > 0 && BlockType < 64) ? animFrames[BlockType] : 1;
	float frame = frames > 1 ? mod(floor(time * 8.0), float(frames)) : 0.0;
	float layer = float((BlockType - 1) * maxFrames) + frame;
	vec4 color = texture(blockTexture, vec3(TexCoord, layer));
	if (color.a < 0.1) {
		discard;
	}
	FragColor = color;
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 mvp;

void main() {
	gl_Position = mvp * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec4 color;

out vec4 FragColor;

void main() {
	FragColor = color;
}
`
