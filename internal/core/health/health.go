// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

// Package health groups body measurements, exercise logs and diet/workout
// plans under a single wellness domain.
package health

import "time"

const (
	MeasurementWeight        = "WEIGHT"
	MeasurementBloodPressure = "BLOOD_PRESSURE"
	MeasurementHeartRate     = "HEART_RATE"
	MeasurementSleepHours    = "SLEEP_HOURS"
	MeasurementWaterIntake   = "WATER_INTAKE"
	MeasurementOther         = "OTHER"
)

// MeasurementTypes lists the accepted measurement kinds.
var MeasurementTypes = []string{
	MeasurementWeight,
	MeasurementBloodPressure,
	MeasurementHeartRate,
	MeasurementSleepHours,
	MeasurementWaterIntake,
	MeasurementOther,
}

/*
Measurement records a single body metric reading.

Value is free-form text because readings are heterogeneous: "82.5" for
weight, "120/80" for blood pressure. Interpretation belongs to the client.
*/
type Measurement struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	Unit      *string   `json:"unit,omitempty"`
	Date      time.Time `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Exercise records a completed workout session. Duration is in minutes.
type Exercise struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Duration       int       `json:"duration"`
	CaloriesBurned *int      `json:"caloriesBurned,omitempty"`
	Date           time.Time `json:"date"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

/*
Plan is a diet or workout program with free-form content and a validity
window. A plan with a nil EndDate runs indefinitely; the plan whose window
contains today is the current one.
*/
type Plan struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Content   string     `json:"content"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Overview bundles the whole wellness picture for the dashboard: recent
// readings, recent sessions and whichever plans are active today.
type Overview struct {
	Measurements       []*Measurement `json:"measurements"`
	Exercises          []*Exercise    `json:"exercises"`
	CurrentDietPlan    *Plan          `json:"currentDietPlan"`
	CurrentWorkoutPlan *Plan          `json:"currentWorkoutPlan"`
}
