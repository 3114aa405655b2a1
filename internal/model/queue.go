package model

// QueueStatus is a snapshot of one channel's delivery queue.
type QueueStatus struct {
	Channel   ChannelKey `json:"channel"`
	Waiting   int        `json:"waiting"`   // ready in the main queue
	Delayed   int        `json:"delayed"`   // parked in retry tiers until their backoff expires
	Active    int64      `json:"active"`    // being processed by this process
	Completed int64      `json:"completed"` // finished successfully since this process started
	Failed    int        `json:"failed"`    // abandoned after the last attempt, held in the dead-letter queue
}
