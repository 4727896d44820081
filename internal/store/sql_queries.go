// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/MKhiriev/obesitrack/models"
	sq "github.com/Masterminds/squirrel"
)

var (
	userColumns       = []string{"id", "email", "hashed_password", "full_name", "role", "created_at"}
	predictionColumns = []string{"id", "user_id", "payload_json", "predicted_class", "proba", "created_at"}

	usersTable       = models.User{}.TableName()
	predictionsTable = models.Prediction{}.TableName()
)

func buildInsertUserQuery(sb sq.StatementBuilderType, user models.User) (string, []any, error) {
	return sb.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Email, user.HashedPassword, user.FullName, string(user.Role), user.CreatedAt).
		ToSql()
}

func buildSelectUserQuery(sb sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return sb.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func buildCountQuery(sb sq.StatementBuilderType, table string, where sq.Sqlizer) (string, []any, error) {
	query := sb.Select("COUNT(*)").From(table)
	if where != nil {
		query = query.Where(where)
	}
	return query.ToSql()
}

func buildCountUsersCreatedSinceQuery(sb sq.StatementBuilderType, since time.Time) (string, []any, error) {
	return buildCountQuery(sb, usersTable, sq.GtOrEq{"created_at": since})
}

func buildListUsersWithCountsQuery(sb sq.StatementBuilderType, limit, offset int) (string, []any, error) {
	return sb.Select(
		"u.id", "u.email", "u.hashed_password", "u.full_name", "u.role", "u.created_at",
		"COUNT(p.id) AS predictions_count",
	).
		From(usersTable + " u").
		LeftJoin(predictionsTable + " p ON p.user_id = u.id").
		GroupBy("u.id", "u.email", "u.hashed_password", "u.full_name", "u.role", "u.created_at").
		OrderBy("u.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

// buildUpdateUserQuery sets only the non-nil fields of patch.
func buildUpdateUserQuery(sb sq.StatementBuilderType, patch models.UserPatch) (string, []any, error) {
	set := make(map[string]any, 4)
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.HashedPassword != nil {
		set["hashed_password"] = *patch.HashedPassword
	}
	if patch.FullName != nil {
		set["full_name"] = *patch.FullName
	}
	if patch.Role != nil {
		set["role"] = string(*patch.Role)
	}

	return sb.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"id": patch.ID}).
		ToSql()
}

func buildDeleteQuery(sb sq.StatementBuilderType, table string, where sq.Eq) (string, []any, error) {
	return sb.Delete(table).Where(where).ToSql()
}

func buildInsertPredictionQuery(sb sq.StatementBuilderType, prediction models.Prediction, payload []byte, proba []byte) (string, []any, error) {
	var probaArg any
	if proba != nil {
		probaArg = string(proba)
	}

	return sb.Insert(predictionsTable).
		Columns(predictionColumns...).
		Values(prediction.ID, prediction.UserID, string(payload), prediction.PredictedClass, probaArg, prediction.CreatedAt).
		ToSql()
}

func buildSelectPredictionQuery(sb sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return sb.Select(predictionColumns...).
		From(predictionsTable).
		Where(where).
		ToSql()
}

func buildListPredictionsByUserQuery(sb sq.StatementBuilderType, userID string, limit int) (string, []any, error) {
	return sb.Select(predictionColumns...).
		From(predictionsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
}

func buildListRecentPredictionsQuery(sb sq.StatementBuilderType, limit int) (string, []any, error) {
	return sb.Select("p.id", "u.email", "p.predicted_class", "p.created_at").
		From(predictionsTable + " p").
		Join(usersTable + " u ON u.id = p.user_id").
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(limit)).
		ToSql()
}

func buildCountByClassQuery(sb sq.StatementBuilderType) (string, []any, error) {
	return sb.Select("predicted_class", "COUNT(*)").
		From(predictionsTable).
		GroupBy("predicted_class").
		ToSql()
}
