package domain

// Fixed HQ broadcast topics. These are the only topics accepted when the
// restrict policy is active.
const (
	TopicHQAll      = "hq-all"
	TopicStockLow   = "hq-stock-low"
	TopicExpireSoon = "hq-expire-soon"
)

var hqTopics = []string{TopicHQAll, TopicStockLow, TopicExpireSoon}

// IsAllowedTopic reports whether topic belongs to the fixed HQ allow-list
func IsAllowedTopic(topic string) bool {
	for _, t := range hqTopics {
		if t == topic {
			return true
		}
	}
	return false
}
