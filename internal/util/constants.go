package util

// InstitutionalSuffix is the reserved domain ending required on teacher
// institutional emails.
const InstitutionalSuffix = ".edu.ar"

// UnlockScoreThreshold is the exclusive minimum quiz score that unlocks the
// next level.
const UnlockScoreThreshold = 8

// UnlockedLevel is the level granted when a quiz attempt beats the threshold.
const UnlockedLevel = 2
