package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is an unordered collection of objects that is itself hittable.
// It is mutated only while a scene is built and read-only during rendering.
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{objects: append([]Hittable(nil), objects...)}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.objects = append(l.objects, object)
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.objects = nil
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the objects in insertion order
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Hit returns the closest hit across all objects. Every object is tested;
// tMax shrinks to the best t found so far.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
