package activities

import (
	"context"
	"sort"
	"sync"

	"go.temporal.io/sdk/temporal"

	"audio-briefing/src/core"
	"audio-briefing/src/services"
)

// ActivityFunction is the type signature for all email activities.
// Dependencies are bound by the worker at registration time.
type ActivityFunction func(ctx context.Context, deps *core.Deps, req services.EmailRequest) error

// ActivityInfo holds information about a registered activity
type ActivityInfo struct {
	Name        string
	Function    ActivityFunction
	RetryPolicy *temporal.RetryPolicy
}

// Container holds all registered activities
type Container struct {
	activities map[string]ActivityInfo
	mu         sync.RWMutex
}

var (
	containerInstance *Container
	containerOnce     sync.Once
)

// GetContainer returns the singleton instance of Container
func GetContainer() *Container {
	containerOnce.Do(func() {
		containerInstance = &Container{
			activities: make(map[string]ActivityInfo),
		}
	})
	return containerInstance
}

// RegisterActivity registers an activity function with a name.
// This is called by each activity's init() function.
func RegisterActivity(name string, fn ActivityFunction, opts ...func(*ActivityOptions)) {
	options := ActivityOptions{RetryPolicy: NoRetry()}
	for _, opt := range opts {
		opt(&options)
	}

	container := GetContainer()
	container.mu.Lock()
	defer container.mu.Unlock()
	container.activities[name] = ActivityInfo{
		Name:        name,
		Function:    fn,
		RetryPolicy: options.RetryPolicy,
	}
}

// GetActivity returns the activity for a given name
func (c *Container) GetActivity(name string) (ActivityInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, exists := c.activities[name]
	return info, exists
}

// GetAllActivityNames returns all registered activity names, sorted
func (c *Container) GetAllActivityNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.activities))
	for name := range c.activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasActivity returns true if an activity with the given name is registered
func (c *Container) HasActivity(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.activities[name]
	return exists
}

// Convenience functions that use the singleton instance

func GetActivity(name string) (ActivityInfo, bool) {
	return GetContainer().GetActivity(name)
}

func GetAllActivityNames() []string {
	return GetContainer().GetAllActivityNames()
}

func HasActivity(name string) bool {
	return GetContainer().HasActivity(name)
}

// GetRetryPolicy returns the retry policy registered for an activity, NoRetry when unknown
func GetRetryPolicy(name string) *temporal.RetryPolicy {
	if info, ok := GetActivity(name); ok && info.RetryPolicy != nil {
		return info.RetryPolicy
	}
	return NoRetry()
}
