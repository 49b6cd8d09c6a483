/*
Package monitoring provides metrics collection for the desktop.

# Overview

This package implements Prometheus-based metrics for the process table, the
window compositor, the control loop and the HTTP control surface.

# Features

- Process metrics (running, spawned, killed, open outcomes)
- Window metrics (open windows, events by type)
- Control loop task counts and latency
- HTTP request metrics (latency, throughput)
- WebSocket event stream metrics
- Uptime

# Usage

	// Create metrics collector on its own registry
	metrics := monitoring.NewMetrics(nil)

	// Wire into the kernel
	manager := app.NewManager(compositor, fs, apis).WithMetrics(metrics)

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
*/
package monitoring
