package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement constants, in blocks and seconds.
const (
	WalkSpeed    = 2.5
	Gravity      = -9.8
	JumpVelocity = 5.0
	EyeHeight    = 1.6
)

// MoveInput is one tick of movement intent.
type MoveInput struct {
	Forward, Back, Left, Right bool
	Jump                       bool
}

// Player is the first-person body: feet position, vertical velocity and
// look direction.
type Player struct {
	Position  mgl32.Vec3
	VelocityY float32
	Yaw       float32 // Degrees, -90 looks down -Z
	Pitch     float32 // Degrees, clamped to ±89

	GroundLevel float32 // Lowest Y the feet can reach
}

// NewPlayer returns a player at spawn looking down -Z.
func NewPlayer(spawn mgl32.Vec3, groundLevel float32) *Player {
	return &Player{Position: spawn, Yaw: -90, GroundLevel: groundLevel}
}

// Front returns the normalized look direction.
func (p *Player) Front() mgl32.Vec3 {
	yaw, pitch := mgl32.DegToRad(p.Yaw), mgl32.DegToRad(p.Pitch)
	return mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// Eye returns the camera position.
func (p *Player) Eye() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, EyeHeight, 0})
}

// Look turns the player by mouse deltas already scaled to degrees.
func (p *Player) Look(dYaw, dPitch float32) {
	p.Yaw += dYaw
	p.Pitch = mgl32.Clamp(p.Pitch+dPitch, -89, 89)
}

// Step advances the player by dt seconds. Horizontal moves are checked one
// direction at a time and dropped when they collide; gravity is applied
// after, and landing or hitting a ceiling zeroes the vertical velocity.
func (p *Player) Step(v BlockView, blocks *BlockTable, in MoveInput, dt float32) {
	speed := float32(WalkSpeed) * dt
	front := p.Front()
	right := front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	flat := mgl32.Vec3{front[0], 0, front[2]}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}

	move := func(delta mgl32.Vec3) {
		next := mgl32.Vec3{p.Position[0] + delta[0], p.Position[1], p.Position[2] + delta[2]}
		if !Collides(v, blocks, next) {
			p.Position[0], p.Position[2] = next[0], next[2]
		}
	}
	if in.Forward {
		move(flat.Mul(speed))
	}
	if in.Back {
		move(flat.Mul(-speed))
	}
	if in.Left {
		move(right.Mul(-speed))
	}
	if in.Right {
		move(right.Mul(speed))
	}

	if in.Jump && p.VelocityY == 0 {
		p.VelocityY = JumpVelocity
	}

	p.VelocityY += Gravity * dt
	next := p.Position
	next[1] += p.VelocityY * dt
	if Collides(v, blocks, next) {
		p.VelocityY = 0
	} else {
		p.Position[1] = next[1]
	}
	if p.Position[1] < p.GroundLevel {
		p.Position[1] = p.GroundLevel
		p.VelocityY = 0
	}
}
