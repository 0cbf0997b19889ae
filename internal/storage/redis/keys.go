package redis

import (
	"fmt"

	"github.com/dmaraujo/treinos/internal/model"
)

// Key prefix for all tracker data
const keyPrefix = "treinos"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// userNameIndexKey returns the Redis key for the character name -> user_id index
func userNameIndexKey(characterName string) string {
	return fmt.Sprintf("%s:idx:user_name:%s", keyPrefix, characterName)
}

// usersIndexKey returns the Redis key for the ZSET of all users,
// scored by creation time
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playerNameIndexKey returns the Redis key for the character name -> player_id index
func playerNameIndexKey(characterName string) string {
	return fmt.Sprintf("%s:idx:player_name:%s", keyPrefix, characterName)
}

// playersIndexKey returns the Redis key for the ZSET of all players,
// scored by creation time
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// reportKey returns the Redis key for a Report
func reportKey(id model.ReportID) string {
	return fmt.Sprintf("%s:report:%s", keyPrefix, id)
}

// reportsForPlayerIndexKey returns the Redis key for the ZSET of
// reports against a player, scored by creation time
func reportsForPlayerIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:reports_for_player:%s", keyPrefix, playerID)
}

// reportsByReporterIndexKey returns the Redis key for the ZSET of
// reports filed by a user, scored by creation time
func reportsByReporterIndexKey(reporterID model.UserID) string {
	return fmt.Sprintf("%s:idx:reports_by_reporter:%s", keyPrefix, reporterID)
}

// paymentKey returns the Redis key for a Payment
func paymentKey(id model.PaymentID) string {
	return fmt.Sprintf("%s:payment:%s", keyPrefix, id)
}

// paymentDayIndexKey returns the Redis key holding the payment_id of
// the earliest payment for a (player, training date) pair
func paymentDayIndexKey(playerID model.PlayerID, trainingDate string) string {
	return fmt.Sprintf("%s:idx:payment_day:%s:%s", keyPrefix, playerID, trainingDate)
}

// paymentsForDateIndexKey returns the Redis key for the ZSET of
// payments on a training date, scored by creation time
func paymentsForDateIndexKey(trainingDate string) string {
	return fmt.Sprintf("%s:idx:payments_for_date:%s", keyPrefix, trainingDate)
}

// paymentsForPlayerIndexKey returns the Redis key for the ZSET of a
// player's payments, scored by creation time
func paymentsForPlayerIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:payments_for_player:%s", keyPrefix, playerID)
}

// paymentsByUserIndexKey returns the Redis key for the ZSET of
// payments filed by a user, scored by creation time
func paymentsByUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:payments_by_user:%s", keyPrefix, userID)
}

// checkInKey returns the Redis key for a CheckIn
func checkInKey(id model.CheckInID) string {
	return fmt.Sprintf("%s:checkin:%s", keyPrefix, id)
}

// checkInDayIndexKey returns the Redis key guarding one check-in per
// (reporter, player, training date)
func checkInDayIndexKey(reporterID model.UserID, playerID model.PlayerID, trainingDate string) string {
	return fmt.Sprintf("%s:idx:checkin_day:%s:%s:%s", keyPrefix, reporterID, playerID, trainingDate)
}

// checkInsForPlayerIndexKey returns the Redis key for the ZSET of a
// player's check-ins, scored by creation time
func checkInsForPlayerIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:checkins_for_player:%s", keyPrefix, playerID)
}

// checkInsForDateIndexKey returns the Redis key for the ZSET of
// check-ins on a training date, scored by creation time
func checkInsForDateIndexKey(trainingDate string) string {
	return fmt.Sprintf("%s:idx:checkins_for_date:%s", keyPrefix, trainingDate)
}

// payoutKey returns the Redis key for a ReporterPayout
func payoutKey(id model.PayoutID) string {
	return fmt.Sprintf("%s:payout:%s", keyPrefix, id)
}

// payoutsForReporterIndexKey returns the Redis key for the ZSET of a
// reporter's payouts, scored by creation time
func payoutsForReporterIndexKey(reporterID model.UserID) string {
	return fmt.Sprintf("%s:idx:payouts_for_reporter:%s", keyPrefix, reporterID)
}

// snapshotsForUserIndexKey returns the Redis key for the ZSET of a
// user's skill snapshots, scored by recording time
func snapshotsForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:snapshots_for_user:%s", keyPrefix, userID)
}

// snapshotKey returns the Redis key for a SkillSnapshot
func snapshotKey(id model.SnapshotID) string {
	return fmt.Sprintf("%s:snapshot:%s", keyPrefix, id)
}
