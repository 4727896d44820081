// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inference

import (
	"strconv"

	"github.com/MKhiriev/obesitrack/models"
)

// classLabels maps the numeric training labels to class names.
var classLabels = [...]string{
	models.InsufficientWeight,
	models.NormalWeight,
	models.OverweightLevelI,
	models.OverweightLevelII,
	models.ObesityTypeI,
	models.ObesityTypeII,
	models.ObesityTypeIII,
}

// LabelFor returns the class name of a numeric label, or Unknown_<n>.
func LabelFor(n int) string {
	if n >= 0 && n < len(classLabels) {
		return classLabels[n]
	}
	return "Unknown_" + strconv.Itoa(n)
}

// probabilityKey names the probability of the class at position i.
func probabilityKey(classes []int, i int) string {
	if n := classes[i]; n >= 0 && n < len(classLabels) {
		return classLabels[n]
	}
	return "Class_" + strconv.Itoa(i)
}
