// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the human-readable strings the ObesiTrack API puts into
// success response bodies. Error texts live next to their sentinel errors.
package app

const (
	// MsgBanner is the message of GET /.
	MsgBanner = "ObesiTrack API is running!"

	// StatusOperational is the status of GET /.
	StatusOperational = "operational"

	MsgPredictionDeleted = "Prediction deleted successfully"

	// MsgUserDeletedFormat takes the email of the removed account.
	MsgUserDeletedFormat = "User %s deleted successfully"
)
