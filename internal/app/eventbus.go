package app

// TopicAuthLogin is published with a domain.LoginEvent after every successful login.
const TopicAuthLogin = "auth:login"

// TopicUserRegistered is published with a domain.User when a user is created on the first login.
const TopicUserRegistered = "user:registered"

const TopicOrderCreated = "order:created"
const TopicOrderCancelled = "order:cancelled"
const TopicPointsChanged = "points:changed"
