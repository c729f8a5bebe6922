package main

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}
`

const fragment = `
#version 420

uniform vec2 extent;
uniform vec4 foreground;
uniform vec4 background;

layout (binding = 0) uniform sampler2D pixels;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // The texture always holds the high resolution area. In normal
    // resolution only its top-left quarter is in use, so stretch that.
    float v = texture(pixels, fragTexCoord * extent).r;
    outputColor = mix(background, foreground, step(0.5, v));
}
`
