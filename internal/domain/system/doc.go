// Package system provides the services handed to every application
// entrypoint.
//
// Key Components:
//   - APIs: Bundle of file system, sound and system services
//   - SoundService: Tracks playing sounds and the global sound toggle
//   - SystemService: Build flags such as debug mode
//
// Example Usage:
//
//	apis := system.NewAPIs(fs, system.NewSoundService(true), system.NewSystemService(false))
//	id := apis.Sound.Play("/sounds/startup.mp3", 0.5)
//	apis.Sound.Stop(id)
package system
