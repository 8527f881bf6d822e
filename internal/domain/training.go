package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType names the kind of training activity. Closed set.
type ActivityType string

const (
	ActivityRunning  ActivityType = "RUNNING"
	ActivityCycling  ActivityType = "CYCLING"
	ActivityWalking  ActivityType = "WALKING"
	ActivitySwimming ActivityType = "SWIMMING"
)

// activityTypes is the closed set of recognized activities.
var activityTypes = []ActivityType{
	ActivityRunning,
	ActivityCycling,
	ActivityWalking,
	ActivitySwimming,
}

// ParseActivityType matches s against the known activity types,
// ignoring case. Unknown values are an error.
func ParseActivityType(s string) (ActivityType, error) {
	for _, at := range activityTypes {
		if strings.EqualFold(s, string(at)) {
			return at, nil
		}
	}
	return "", fmt.Errorf("unknown activity type %q", s)
}

func (a ActivityType) String() string {
	return string(a)
}

// Training represents a single training session owned by one user.
// The owner is referenced by ID only; deleting the user does not
// cascade to their trainings.
type Training struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	StartTime    *time.Time         `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime      *time.Time         `bson:"endTime,omitempty" json:"endTime,omitempty"`
	ActivityType ActivityType       `bson:"activityType" json:"activityType"`
	Distance     float64            `bson:"distance" json:"distance"`         // Non-negative by convention
	AverageSpeed float64            `bson:"averageSpeed" json:"averageSpeed"` // Non-negative by convention
}
